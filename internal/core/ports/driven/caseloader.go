package driven

import "github.com/ahouse2/LCAS/internal/core/domain"

// CaseLoader decodes a case configuration from some storage format.
// The core validates the result; the loader only decodes and applies
// defaults. No particular format is mandated by the core.
type CaseLoader interface {
	// Load reads and decodes the configuration at path.
	Load(path string) (*domain.CaseConfig, error)
}
