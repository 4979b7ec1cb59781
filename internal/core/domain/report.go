package domain

import "time"

// RunState is the orchestration engine's lifecycle state for one run.
type RunState string

// Run lifecycle states. Failed is terminal and reachable from any
// non-terminal state on a fatal configuration error.
const (
	RunNotStarted   RunState = "not-started"
	RunInitializing RunState = "initializing"
	RunRunning      RunState = "running"
	RunFinalizing   RunState = "finalizing"
	RunCompleted    RunState = "completed"
	RunFailed       RunState = "failed"
)

// RunReport is the immutable aggregation of one completed run, handed
// to reporting and UI collaborators. Plugin outcomes preserve the
// resolved topological order; items preserve discovery order.
type RunReport struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// CaseName is the case this run analysed.
	CaseName string `json:"case_name"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Outcomes lists every scheduled plugin's terminal result, in the
	// resolved topological order.
	Outcomes []PluginOutcome `json:"outcomes"`

	// Items is the final evidence set with assignments, in discovery
	// order.
	Items []EvidenceItem `json:"items"`

	// CategoryCounts maps each assigned category to its item count.
	CategoryCounts map[string]int `json:"category_counts"`
}

// Succeeded reports whether every scheduled plugin reached
// StatusSucceeded.
func (r *RunReport) Succeeded() bool {
	for _, o := range r.Outcomes {
		if o.Status != StatusSucceeded {
			return false
		}
	}
	return true
}

// ReviewCount returns the number of items routed to human review.
func (r *RunReport) ReviewCount() int {
	var n int
	for i := range r.Items {
		if a := r.Items[i].Assignment; a != nil && a.Reviewed() {
			n++
		}
	}
	return n
}
