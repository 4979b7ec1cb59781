// Package file provides the TOML case configuration loader.
package file

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.CaseLoader = (*Loader)(nil)

// Loader decodes a case configuration from a TOML file. The core
// validates the result; the loader only decodes and applies defaults.
type Loader struct{}

// NewLoader creates a TOML case loader.
func NewLoader() *Loader {
	return &Loader{}
}

// caseFile is the on-disk TOML shape.
type caseFile struct {
	CaseName            string                    `toml:"case_name"`
	SourceDir           string                    `toml:"source_dir"`
	TargetDir           string                    `toml:"target_dir"`
	EnabledPlugins      []string                  `toml:"enabled_plugins"`
	PreserveOriginals   bool                      `toml:"preserve_originals"`
	MaxItems            int                       `toml:"max_items"`
	PluginTimeout       string                    `toml:"plugin_timeout"`
	ConfidenceThreshold float64                   `toml:"confidence_threshold"`
	ReviewCategory      string                    `toml:"review_category"`
	PluginOptions       map[string]map[string]any `toml:"plugin_options"`
	Taxonomy            []taxonomyNode            `toml:"taxonomy"`
	AI                  AISettings                `toml:"ai"`
}

type taxonomyNode struct {
	Name     string         `toml:"name"`
	Keywords []string       `toml:"keywords"`
	Children []taxonomyNode `toml:"children"`
}

// AISettings selects and configures the optional AI oracle provider.
type AISettings struct {
	// Provider is "anthropic", "openai" or empty for none.
	Provider string `toml:"provider"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `toml:"api_key_env"`

	// BaseURL overrides the provider endpoint (local gateways, tests).
	BaseURL string `toml:"base_url"`

	// RequestsPerMinute caps the client-side request rate. Zero uses
	// the provider adapter's default.
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// Load reads and decodes the configuration at path, implementing the
// CaseLoader port.
func (l *Loader) Load(path string) (*domain.CaseConfig, error) {
	cfg, _, err := l.LoadWithAI(path)
	return cfg, err
}

// LoadWithAI reads the configuration plus the AI provider settings the
// CLI uses to construct the oracle adapter.
func (l *Loader) LoadWithAI(path string) (*domain.CaseConfig, *AISettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}

	var raw caseFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: decode %s: %v", domain.ErrInvalidConfig, path, err)
	}

	cfg := &domain.CaseConfig{
		CaseName:            raw.CaseName,
		SourceDir:           raw.SourceDir,
		TargetDir:           raw.TargetDir,
		EnabledPlugins:      raw.EnabledPlugins,
		PluginOptions:       raw.PluginOptions,
		PreserveOriginals:   raw.PreserveOriginals,
		MaxItems:            raw.MaxItems,
		ConfidenceThreshold: raw.ConfidenceThreshold,
	}

	if raw.PluginTimeout != "" {
		d, err := time.ParseDuration(raw.PluginTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: plugin_timeout %q: %v", domain.ErrInvalidConfig, raw.PluginTimeout, err)
		}
		cfg.PluginTimeout = d
	}

	if len(raw.Taxonomy) > 0 {
		cfg.Taxonomy = buildTaxonomy(raw.Taxonomy, raw.ReviewCategory)
	}

	cfg.Normalise()
	return cfg, &raw.AI, nil
}

// buildTaxonomy converts the decoded tables into the domain tree,
// preserving declaration order and appending the review node when the
// file omits it.
func buildTaxonomy(nodes []taxonomyNode, review string) *domain.Taxonomy {
	if review == "" {
		review = domain.ReviewCategory
	}

	tax := &domain.Taxonomy{ReviewNode: review}
	var convert func(in []taxonomyNode) []domain.TaxonomyNode
	convert = func(in []taxonomyNode) []domain.TaxonomyNode {
		out := make([]domain.TaxonomyNode, 0, len(in))
		for _, n := range in {
			out = append(out, domain.TaxonomyNode{
				Name:     n.Name,
				Keywords: n.Keywords,
				Children: convert(n.Children),
			})
		}
		return out
	}
	tax.Nodes = convert(nodes)

	found := false
	for _, n := range tax.Flatten() {
		if n.Name == review {
			found = true
			break
		}
	}
	if !found {
		tax.Nodes = append(tax.Nodes, domain.TaxonomyNode{Name: review})
	}
	return tax
}
