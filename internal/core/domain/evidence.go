package domain

import "time"

// Assignment reason codes recorded for audit.
const (
	// ReasonBelowThreshold marks an item whose best score missed the
	// confidence threshold.
	ReasonBelowThreshold = "below-threshold"

	// ReasonNoText marks an item whose text extraction was absent or
	// failed upstream. This is a terminal per-item outcome, not an error.
	ReasonNoText = "no-extractable-text"
)

// EvidenceItem is one discovered file treated as an atomic unit of
// classification. Items are created during ingestion, enriched by
// downstream plugins, and never deleted within a run.
type EvidenceItem struct {
	// ID is the stable identifier, derived from the original path and
	// the content digest.
	ID string `json:"id"`

	// OriginalPath is the absolute path of the discovered file.
	OriginalPath string `json:"original_path"`

	// RelPath is the path relative to the case source directory.
	RelPath string `json:"rel_path"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// Digest is the hex content digest used for integrity verification.
	Digest string `json:"digest"`

	// Text is the extracted text content. Valid only when TextOK is set.
	Text string `json:"-"`

	// TextOK reports whether text extraction succeeded for this item.
	TextOK bool `json:"text_ok"`

	// Summary is an optional AI-generated abstract of the content.
	Summary string `json:"summary,omitempty"`

	// Assignment is the classification outcome. Nil until classified.
	Assignment *Assignment `json:"assignment,omitempty"`

	// DiscoveredAt is when ingestion created the item.
	DiscoveredAt time.Time `json:"discovered_at"`

	// ClassifiedAt is when the categorization engine finalised the item.
	ClassifiedAt time.Time `json:"classified_at,omitempty"`
}

// Assignment is a confidence-scored category decision for one item.
// The runner-up is retained for transparency in the final report.
type Assignment struct {
	// Category is the assigned taxonomy node name.
	Category string `json:"category"`

	// Confidence is the normalised match score in [0, 1].
	Confidence float64 `json:"confidence"`

	// RunnerUp is the second-best node name, empty if none scored.
	RunnerUp string `json:"runner_up,omitempty"`

	// RunnerUpScore is the runner-up's normalised score.
	RunnerUpScore float64 `json:"runner_up_score,omitempty"`

	// Reason is empty for accepted assignments, otherwise one of the
	// Reason* codes explaining the review routing.
	Reason string `json:"reason,omitempty"`
}

// Reviewed reports whether the item was routed to human review rather
// than accepted automatically.
func (a *Assignment) Reviewed() bool {
	return a.Reason != ""
}
