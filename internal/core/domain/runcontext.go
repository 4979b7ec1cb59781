package domain

import "sync"

// RunContext is the single run's shared mutable state, passed to every
// plugin invocation. The orchestration engine owns it for the run's
// duration; plugins receive it as a read/append handle.
//
// The evidence item slice is the only shared mutable resource across
// plugins. Appends happen during the ingestion stage, before any
// downstream plugin starts; concurrent plugins mutate disjoint owned
// fields on existing items. Payload buckets are written exclusively by
// the engine, which publishes a plugin's payload only after its execute
// completes inside the time budget.
type RunContext struct {
	// Config is the validated case configuration, read-only.
	Config *CaseConfig

	mu       sync.RWMutex
	items    []*EvidenceItem
	payloads map[string]any
}

// NewRunContext creates the shared state for one run.
func NewRunContext(cfg *CaseConfig) *RunContext {
	return &RunContext{
		Config:   cfg,
		payloads: make(map[string]any),
	}
}

// Taxonomy returns the category tree for this run.
func (rc *RunContext) Taxonomy() *Taxonomy {
	return rc.Config.Taxonomy
}

// AppendItem adds a discovered evidence item. Serialised internally;
// callers run only during the ingestion stage.
func (rc *RunContext) AppendItem(item *EvidenceItem) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.items = append(rc.items, item)
}

// Items returns the evidence items in discovery order. The slice is a
// copy; the pointed-to items are shared and mutated in place by the
// plugin owning each field.
func (rc *RunContext) Items() []*EvidenceItem {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	out := make([]*EvidenceItem, len(rc.items))
	copy(out, rc.items)
	return out
}

// ItemCount returns the number of discovered items.
func (rc *RunContext) ItemCount() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.items)
}

// SetPayload publishes a plugin's result bucket. Called by the engine
// only, and only for plugins that completed inside their time budget.
func (rc *RunContext) SetPayload(pluginID string, payload any) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.payloads[pluginID] = payload
}

// Payload returns another plugin's published result bucket. Plugins
// read buckets only for plugins listed in their declared dependencies.
func (rc *RunContext) Payload(pluginID string) (any, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	p, ok := rc.payloads[pluginID]
	return p, ok
}
