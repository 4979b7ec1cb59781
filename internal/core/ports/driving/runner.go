package driving

import (
	"context"

	"github.com/ahouse2/LCAS/internal/core/domain"
)

// Runner executes one full analysis run for a case.
type Runner interface {
	// Run resolves the enabled plugin set, executes the pipeline and
	// returns the assembled report. Only fatal configuration errors are
	// returned; plugin and item failures are data in the report. A
	// completed run always yields a report, even when every
	// non-critical plugin failed.
	Run(ctx context.Context) (*domain.RunReport, error)

	// State reports the engine's current lifecycle state.
	State() domain.RunState
}

// Validator checks a configuration and plugin set without running
// anything. Used by the validate command.
type Validator interface {
	// Validate performs the static checks: configuration invariants,
	// registry resolution, ownership conflicts. Returns the resolved
	// execution order on success.
	Validate() ([]string, error)
}
