package domain

import "time"

// Plugin capabilities declared by descriptors. Informational except for
// CapabilityAI, which gates access to the AI oracle adapter.
const (
	CapabilityIngestion  = "ingestion"
	CapabilityExtraction = "extraction"
	CapabilityScoring    = "scoring"
	CapabilityAI         = "ai"
	CapabilityReporting  = "reporting"
)

// Evidence field names claimable by a plugin descriptor. Two enabled
// plugins may claim the same field only when a dependency edge orders
// their writes.
const (
	FieldIdentity = "identity"
	FieldText     = "text"
	FieldSummary  = "summary"
	FieldCategory = "category"
)

// PluginDescriptor is the static metadata a plugin declares at
// registration. The registry operates over descriptors, never over
// ad-hoc introspection of plugin values.
type PluginDescriptor struct {
	// ID is the unique plugin identifier, e.g. "file-ingestion".
	ID string

	// Version is the plugin's version tag.
	Version string

	// Capability names what the plugin contributes.
	Capability string

	// Dependencies are identifiers of plugins that must complete first.
	Dependencies []string

	// OwnedFields are the evidence fields this plugin writes.
	OwnedFields []string
}

// PluginStatus is the terminal per-plugin state after a run.
type PluginStatus string

// Terminal plugin statuses.
const (
	StatusSucceeded PluginStatus = "succeeded"
	StatusFailed    PluginStatus = "failed"
	StatusTimedOut  PluginStatus = "timed-out"
	StatusSkipped   PluginStatus = "skipped-due-to-dependency-failure"
)

// Terminal reports whether the status allows dependents to be scheduled
// or skipped; every status here is terminal by construction.
func (s PluginStatus) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusTimedOut, StatusSkipped:
		return true
	default:
		return false
	}
}

// PluginOutcome records one plugin's result within a run.
type PluginOutcome struct {
	// PluginID identifies the plugin.
	PluginID string `json:"plugin_id"`

	// Status is the terminal status.
	Status PluginStatus `json:"status"`

	// Elapsed is the wall-clock time spent in initialize and execute.
	Elapsed time.Duration `json:"elapsed_ns"`

	// Err holds the failure detail. Present iff Status != StatusSucceeded,
	// except StatusSkipped where it names the failed dependency.
	Err string `json:"error,omitempty"`

	// Payload is the plugin's opaque result object. Nil for failed,
	// timed-out and skipped plugins: no partial payload is trusted.
	Payload any `json:"payload,omitempty"`
}
