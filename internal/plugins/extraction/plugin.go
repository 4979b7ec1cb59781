// Package extraction populates each evidence item's text via the
// extractor registry.
package extraction

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/core/ports/driven"
	"github.com/ahouse2/LCAS/internal/logger"
	"github.com/ahouse2/LCAS/internal/plugins/ingestion"
)

// ID is the plugin identifier downstream plugins declare as a dependency.
const ID = "content-extraction"

// Ensure Plugin implements the interface.
var _ driven.Plugin = (*Plugin)(nil)

// Plugin runs the text extractor capability over every ingested item.
// An item whose format has no extractor, or whose extraction fails, is
// left without text; the categorization engine routes such items to
// review. Extraction failures are per-item outcomes, never plugin
// failures.
type Plugin struct {
	registry driven.ExtractorRegistry
	skip     map[string]struct{}
}

// New creates the extraction plugin.
func New(registry driven.ExtractorRegistry) *Plugin {
	return &Plugin{registry: registry}
}

// Descriptor returns the plugin's static metadata.
func (p *Plugin) Descriptor() domain.PluginDescriptor {
	return domain.PluginDescriptor{
		ID:           ID,
		Version:      "1.0.0",
		Capability:   domain.CapabilityExtraction,
		Dependencies: []string{ingestion.ID},
		OwnedFields:  []string{domain.FieldText},
	}
}

// Initialize reads the skip_extensions option, a list of extensions the
// case explicitly excludes from extraction.
func (p *Plugin) Initialize(_ context.Context, rc *domain.RunContext) error {
	p.skip = make(map[string]struct{})
	opts := rc.Config.Options(ID)
	if raw, ok := opts["skip_extensions"]; ok {
		if list, ok := raw.([]any); ok {
			for _, v := range list {
				if s, ok := v.(string); ok {
					p.skip[strings.ToLower(s)] = struct{}{}
				}
			}
		}
	}
	return nil
}

// Summary is the plugin's payload.
type Summary struct {
	Extracted int `json:"extracted"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// Execute extracts text for every item, observing cancellation between
// items.
func (p *Plugin) Execute(ctx context.Context, rc *domain.RunContext) (any, error) {
	summary := &Summary{}
	for _, item := range rc.Items() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ext := strings.ToLower(filepath.Ext(item.RelPath))
		if _, skip := p.skip[ext]; skip {
			summary.Skipped++
			continue
		}

		text, err := p.registry.Extract(ctx, item.OriginalPath)
		if err != nil {
			logger.Debug("Extraction failed for %s: %v", item.RelPath, err)
			summary.Failed++
			continue
		}
		item.Text = text
		item.TextOK = true
		summary.Extracted++
	}

	logger.Info("Extracted text from %d items (%d failed, %d skipped)",
		summary.Extracted, summary.Failed, summary.Skipped)
	return summary, nil
}

// Cleanup releases nothing.
func (p *Plugin) Cleanup(_ *domain.RunContext) {}
