// Package aisummary enriches evidence items with AI-generated
// abstracts via the AI oracle capability.
package aisummary

import (
	"context"
	"fmt"

	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/core/ports/driven"
	"github.com/ahouse2/LCAS/internal/logger"
	"github.com/ahouse2/LCAS/internal/plugins/extraction"
)

// ID is the plugin identifier.
const ID = "ai-summary"

// Default option values.
const (
	defaultMaxWords = 120
	defaultMaxChars = 8000
)

// Ensure Plugin implements the interface.
var _ driven.Plugin = (*Plugin)(nil)

// Plugin summarises each item's extracted text through the AI service.
// The oracle is optional infrastructure: a missing service or a
// provider failure (rate limit, auth, timeout) fails this plugin in
// isolation, exactly like any other execute failure, and only its
// dependents are skipped.
type Plugin struct {
	ai driven.AIService

	maxWords int
	maxChars int
}

// New creates the AI summary plugin. ai may be nil when no provider is
// configured; the plugin then fails at initialize.
func New(ai driven.AIService) *Plugin {
	return &Plugin{ai: ai}
}

// Descriptor returns the plugin's static metadata.
func (p *Plugin) Descriptor() domain.PluginDescriptor {
	return domain.PluginDescriptor{
		ID:           ID,
		Version:      "0.2.0",
		Capability:   domain.CapabilityAI,
		Dependencies: []string{extraction.ID},
		OwnedFields:  []string{domain.FieldSummary},
	}
}

// Initialize verifies the oracle is reachable and reads the option bag.
func (p *Plugin) Initialize(ctx context.Context, rc *domain.RunContext) error {
	if p.ai == nil {
		return domain.ErrAIUnavailable
	}

	p.maxWords = defaultMaxWords
	p.maxChars = defaultMaxChars
	opts := rc.Config.Options(ID)
	if v, ok := asInt(opts["max_words"]); ok && v > 0 {
		p.maxWords = v
	}
	if v, ok := asInt(opts["max_chars"]); ok && v > 0 {
		p.maxChars = v
	}

	if err := p.ai.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}
	return nil
}

// Summary is the plugin's payload.
type Summary struct {
	Model      string `json:"model"`
	Summarised int    `json:"summarised"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}

// Execute summarises every item with extracted text. The payload text
// sent to the oracle is bounded by max_chars. Individual item failures
// are tolerated up to the first provider-level error, which fails the
// plugin so a broken provider does not burn through the whole set.
func (p *Plugin) Execute(ctx context.Context, rc *domain.RunContext) (any, error) {
	summary := &Summary{Model: p.ai.ModelName()}
	for _, item := range rc.Items() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !item.TextOK || item.Text == "" {
			summary.Skipped++
			continue
		}

		text := item.Text
		if len(text) > p.maxChars {
			text = text[:p.maxChars]
		}
		abstract, err := p.ai.Summarise(ctx, text, p.maxWords)
		if err != nil {
			summary.Failed++
			return nil, fmt.Errorf("summarise %s: %w", item.RelPath, err)
		}
		item.Summary = abstract
		summary.Summarised++
	}

	logger.Info("Summarised %d items via %s", summary.Summarised, summary.Model)
	return summary, nil
}

// Cleanup closes the provider connection.
func (p *Plugin) Cleanup(_ *domain.RunContext) {
	if p.ai != nil {
		_ = p.ai.Close()
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
