// Package categorize assigns each evidence item to a taxonomy category
// with a confidence score, routing low-confidence items to human
// review.
package categorize

import (
	"context"
	"time"

	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/core/ports/driven"
	"github.com/ahouse2/LCAS/internal/logger"
	"github.com/ahouse2/LCAS/internal/plugins/extraction"
)

// ID is the plugin identifier.
const ID = "evidence-categorization"

// Ensure Plugin implements the interface.
var _ driven.Plugin = (*Plugin)(nil)

// Plugin is the categorization and scoring engine, run as one
// orchestrated plugin over every ingested item. It owns the category
// and confidence fields.
type Plugin struct {
	scorer *Scorer
}

// New creates the categorization plugin.
func New() *Plugin {
	return &Plugin{}
}

// Descriptor returns the plugin's static metadata.
func (p *Plugin) Descriptor() domain.PluginDescriptor {
	return domain.PluginDescriptor{
		ID:           ID,
		Version:      "1.1.0",
		Capability:   domain.CapabilityScoring,
		Dependencies: []string{extraction.ID},
		OwnedFields:  []string{domain.FieldCategory},
	}
}

// Initialize compiles the scorer from the run's taxonomy and threshold.
func (p *Plugin) Initialize(_ context.Context, rc *domain.RunContext) error {
	scorer, err := NewScorer(rc.Taxonomy(), rc.Config.ConfidenceThreshold)
	if err != nil {
		return err
	}
	p.scorer = scorer
	return nil
}

// Summary is the plugin's payload.
type Summary struct {
	Classified int            `json:"classified"`
	Reviewed   int            `json:"reviewed"`
	ByCategory map[string]int `json:"by_category"`
}

// Execute classifies every item. An item without extractable text is
// unconditionally routed to review with confidence 0.0 and the
// no-extractable-text reason; that is a terminal per-item outcome, not
// a failure of this plugin.
func (p *Plugin) Execute(ctx context.Context, rc *domain.RunContext) (any, error) {
	summary := &Summary{ByCategory: make(map[string]int)}
	review := rc.Taxonomy().ReviewNode

	for _, item := range rc.Items() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var assignment domain.Assignment
		if !item.TextOK {
			assignment = domain.Assignment{
				Category: review,
				Reason:   domain.ReasonNoText,
			}
		} else {
			assignment = p.scorer.Score(item.Text)
		}

		item.Assignment = &assignment
		item.ClassifiedAt = time.Now()
		summary.Classified++
		summary.ByCategory[assignment.Category]++
		if assignment.Reviewed() {
			summary.Reviewed++
		}
	}

	logger.Info("Classified %d items, %d routed to %s", summary.Classified, summary.Reviewed, review)
	return summary, nil
}

// Cleanup releases nothing.
func (p *Plugin) Cleanup(_ *domain.RunContext) {}
