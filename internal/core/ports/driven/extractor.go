package driven

import "context"

// TextExtractor pulls plain text out of one family of file formats.
// The format internals are opaque to the core: an extractor either
// yields text or reports failure for a given path.
type TextExtractor interface {
	// SupportedExtensions returns the lower-case file extensions this
	// extractor handles, dot included (".pdf", ".txt").
	SupportedExtensions() []string

	// Priority returns the selection priority (higher = preferred)
	// when several extractors claim the same extension.
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract returns the text content of the file at path.
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractorRegistry selects the appropriate extractor for a file.
// It maintains a priority-ordered list of extractors and dispatches
// on the file extension.
type ExtractorRegistry interface {
	// Extract runs the best matching extractor for path.
	// Returns domain.ErrNoExtractor when no extractor claims the type.
	Extract(ctx context.Context, path string) (string, error)

	// Register adds an extractor to the registry.
	Register(extractor TextExtractor)

	// SupportedExtensions returns all extensions that can be extracted.
	SupportedExtensions() []string
}
