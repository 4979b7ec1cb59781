package driven

import (
	"context"

	"github.com/ahouse2/LCAS/internal/core/domain"
)

// Plugin is one analysis unit orchestrated within a run.
//
// Lifecycle per run: Initialize, then Execute under the configured time
// budget, then Cleanup unconditionally. Execute returns the plugin's
// opaque payload; the engine publishes it into the run context only
// when Execute completes inside the budget, so a timed-out plugin's
// partial payload is never visible to dependents.
//
// Execute must observe ctx cancellation at its own suspension points;
// cancellation on timeout is cooperative.
type Plugin interface {
	// Descriptor returns the plugin's static metadata. Must be constant
	// for the plugin's lifetime.
	Descriptor() domain.PluginDescriptor

	// Initialize prepares the plugin for a run. A failure here is
	// recorded like an execute failure and propagates to dependents.
	Initialize(ctx context.Context, rc *domain.RunContext) error

	// Execute performs the plugin's work and returns its payload.
	Execute(ctx context.Context, rc *domain.RunContext) (any, error)

	// Cleanup releases anything acquired during Initialize. Runs even
	// when Execute failed or timed out.
	Cleanup(rc *domain.RunContext)
}
