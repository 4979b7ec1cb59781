// Package extractors provides the text extraction capability: per-format
// extractors and the registry that dispatches on file extension.
package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry selects the appropriate extractor for a file by extension,
// preferring the highest-priority extractor when several claim the
// same extension.
type Registry struct {
	mu         sync.RWMutex
	extractors []driven.TextExtractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an extractor to the registry.
func (r *Registry) Register(extractor driven.TextExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors = append(r.extractors, extractor)
}

// Extract runs the best matching extractor for path.
func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	var best driven.TextExtractor
	for _, e := range r.extractors {
		if !claims(e, ext) {
			continue
		}
		if best == nil || e.Priority() > best.Priority() {
			best = e
		}
	}
	r.mu.RUnlock()

	if best == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrNoExtractor, ext)
	}
	return best.Extract(ctx, path)
}

// SupportedExtensions returns all extensions that can be extracted,
// sorted for stable output.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := make(map[string]struct{})
	for _, e := range r.extractors {
		for _, ext := range e.SupportedExtensions() {
			set[ext] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for ext := range set {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func claims(e driven.TextExtractor, ext string) bool {
	for _, s := range e.SupportedExtensions() {
		if s == ext {
			return true
		}
	}
	return false
}
