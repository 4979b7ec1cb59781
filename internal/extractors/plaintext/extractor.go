// Package plaintext extracts text from plain text evidence files.
package plaintext

import (
	"context"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// maxFileSize caps how much of a text file is read. Larger evidence
// files are truncated rather than rejected.
const maxFileSize = 10 << 20 // 10 MiB

// Extractor handles plain text files.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{
		".txt", ".md", ".log", ".csv", ".json", ".xml",
		".html", ".htm", ".eml", ".rtf",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5 // Fallback extractor
}

// Extract reads the file and returns its content as text. Binary
// content (invalid UTF-8 beyond a small tolerance) is rejected.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxFileSize))
	if err != nil {
		return "", err
	}

	content := string(data)
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "")
		// Mostly-binary files yield almost no text after scrubbing.
		if len(content) < len(data)/2 {
			return "", domain.ErrInvalidInput
		}
	}
	return content, nil
}
