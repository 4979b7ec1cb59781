package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default configuration values applied by Normalise.
const (
	// DefaultPluginTimeout bounds a single plugin's execute phase.
	DefaultPluginTimeout = 5 * time.Minute

	// DefaultConfidenceThreshold is the minimum normalised score required
	// to accept an automatic category assignment.
	DefaultConfidenceThreshold = 0.25

	// PreservationDirName is the folder under the target directory that
	// receives verbatim copies of the originals.
	PreservationDirName = "00_ORIGINAL_FILES"
)

// CaseConfig holds the validated per-run configuration for a case.
type CaseConfig struct {
	// CaseName identifies the legal case this run belongs to.
	CaseName string

	// SourceDir is the directory holding the original evidence files.
	SourceDir string

	// TargetDir is the directory that receives organised output.
	// Must be distinct from SourceDir.
	TargetDir string

	// EnabledPlugins is the ordered list of plugin identifiers to run.
	// Order here is informational; execution order is the registry's
	// resolved topological order.
	EnabledPlugins []string

	// PluginOptions maps a plugin identifier to its private option bag.
	PluginOptions map[string]map[string]any

	// PreserveOriginals copies every discovered file into the
	// preservation folder before any analysis touches it.
	PreserveOriginals bool

	// MaxItems caps the number of evidence items ingested per run.
	// Zero means unlimited.
	MaxItems int

	// PluginTimeout bounds each plugin's execute phase.
	PluginTimeout time.Duration

	// ConfidenceThreshold routes low-scoring items to the review
	// category. Range [0, 1].
	ConfidenceThreshold float64

	// Taxonomy is the category tree evidence is classified against.
	Taxonomy *Taxonomy
}

// Normalise fills zero-value fields with defaults. Called by loaders
// before Validate.
func (c *CaseConfig) Normalise() {
	if c.PluginTimeout <= 0 {
		c.PluginTimeout = DefaultPluginTimeout
	}
	if c.ConfidenceThreshold == 0 {
		c.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if c.Taxonomy == nil {
		c.Taxonomy = DefaultTaxonomy()
	}
	if c.PluginOptions == nil {
		c.PluginOptions = make(map[string]map[string]any)
	}
}

// Validate checks the configuration invariants. Any failure wraps
// ErrInvalidConfig and is fatal: no plugin may run against an invalid
// configuration.
func (c *CaseConfig) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("%w: source directory not set", ErrInvalidConfig)
	}
	if c.TargetDir == "" {
		return fmt.Errorf("%w: target directory not set", ErrInvalidConfig)
	}

	src, err := filepath.Abs(c.SourceDir)
	if err != nil {
		return fmt.Errorf("%w: resolve source directory: %v", ErrInvalidConfig, err)
	}
	dst, err := filepath.Abs(c.TargetDir)
	if err != nil {
		return fmt.Errorf("%w: resolve target directory: %v", ErrInvalidConfig, err)
	}
	if src == dst {
		return fmt.Errorf("%w: source and target directories must be distinct", ErrInvalidConfig)
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("%w: source directory %s: %v", ErrInvalidConfig, src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: source %s is not a directory", ErrInvalidConfig, src)
	}

	seen := make(map[string]struct{}, len(c.EnabledPlugins))
	for _, id := range c.EnabledPlugins {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: plugin %q enabled twice: %w", ErrInvalidConfig, id, ErrDuplicatePlugin)
		}
		seen[id] = struct{}{}
	}

	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w: confidence threshold %v outside [0, 1]", ErrInvalidConfig, c.ConfidenceThreshold)
	}
	if c.PluginTimeout <= 0 {
		return fmt.Errorf("%w: plugin timeout must be positive", ErrInvalidConfig)
	}

	if c.Taxonomy == nil {
		return fmt.Errorf("%w: taxonomy not set", ErrInvalidConfig)
	}
	if err := c.Taxonomy.Validate(); err != nil {
		return fmt.Errorf("%w: taxonomy: %v", ErrInvalidConfig, err)
	}

	return nil
}

// Options returns the option bag for a plugin, never nil.
func (c *CaseConfig) Options(pluginID string) map[string]any {
	if opts, ok := c.PluginOptions[pluginID]; ok {
		return opts
	}
	return map[string]any{}
}
