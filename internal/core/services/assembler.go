package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/core/ports/driven"
)

// assembleReport aggregates per-plugin and per-item outcomes into the
// immutable run report. Pure with respect to the run context: it only
// reads. The plugin list preserves the resolved topological order and
// the item list preserves ingestion discovery order.
func assembleReport(
	cfg *domain.CaseConfig,
	order []driven.Plugin,
	outcomes map[string]domain.PluginOutcome,
	rc *domain.RunContext,
	started time.Time,
) *domain.RunReport {
	report := &domain.RunReport{
		RunID:          uuid.New().String(),
		CaseName:       cfg.CaseName,
		StartedAt:      started,
		FinishedAt:     time.Now(),
		CategoryCounts: make(map[string]int),
	}

	report.Outcomes = make([]domain.PluginOutcome, 0, len(order))
	for _, p := range order {
		if out, ok := outcomes[p.Descriptor().ID]; ok {
			report.Outcomes = append(report.Outcomes, out)
		}
	}

	items := rc.Items()
	report.Items = make([]domain.EvidenceItem, 0, len(items))
	for _, item := range items {
		report.Items = append(report.Items, *item)
		if item.Assignment != nil {
			report.CategoryCounts[item.Assignment.Category]++
		}
	}

	return report
}
