package services

import (
	"fmt"
	"sort"

	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/core/ports/driven"
)

// PluginRegistry holds the discoverable plugin set and resolves the
// enabled subset into a deterministic execution order.
//
// Resolution rejects the run on any of: an enabled plugin that is not
// registered, a declared dependency outside the enabled set, a cycle in
// the dependency graph, or two plugins claiming the same owned evidence
// field without a dependency path ordering their writes. All of these
// are fatal configuration errors reported before any plugin runs.
type PluginRegistry struct {
	plugins map[string]driven.Plugin
}

// NewPluginRegistry creates an empty registry.
func NewPluginRegistry() *PluginRegistry {
	return &PluginRegistry{plugins: make(map[string]driven.Plugin)}
}

// Register adds a plugin to the discoverable set.
func (r *PluginRegistry) Register(p driven.Plugin) error {
	id := p.Descriptor().ID
	if id == "" {
		return fmt.Errorf("%w: plugin with empty identifier", domain.ErrInvalidConfig)
	}
	if _, exists := r.plugins[id]; exists {
		return fmt.Errorf("%w: %q", domain.ErrDuplicatePlugin, id)
	}
	r.plugins[id] = p
	return nil
}

// Get returns a registered plugin by identifier.
func (r *PluginRegistry) Get(id string) (driven.Plugin, bool) {
	p, ok := r.plugins[id]
	return p, ok
}

// Resolve validates the enabled set and returns it in deterministic
// topological order: every plugin appears after all its dependencies,
// with ties broken by ascending plugin identifier for reproducibility.
func (r *PluginRegistry) Resolve(enabled []string) ([]driven.Plugin, error) {
	enabledSet := make(map[string]driven.Plugin, len(enabled))
	for _, id := range enabled {
		if _, dup := enabledSet[id]; dup {
			return nil, fmt.Errorf("%w: %q enabled twice", domain.ErrDuplicatePlugin, id)
		}
		p, ok := r.plugins[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPlugin, id)
		}
		enabledSet[id] = p
	}

	for id, p := range enabledSet {
		for _, dep := range p.Descriptor().Dependencies {
			if _, ok := enabledSet[dep]; !ok {
				return nil, fmt.Errorf("%w: %q requires %q", domain.ErrDependencyNotEnabled, id, dep)
			}
		}
	}

	order, err := topoSort(enabledSet)
	if err != nil {
		return nil, err
	}

	if err := checkFieldOwnership(enabledSet); err != nil {
		return nil, err
	}

	out := make([]driven.Plugin, len(order))
	for i, id := range order {
		out[i] = enabledSet[id]
	}
	return out, nil
}

// topoSort is Kahn's algorithm with a sorted ready set so the order is
// stable across runs.
func topoSort(plugins map[string]driven.Plugin) ([]string, error) {
	indegree := make(map[string]int, len(plugins))
	dependents := make(map[string][]string, len(plugins))
	for id, p := range plugins {
		indegree[id] += 0
		for _, dep := range p.Descriptor().Dependencies {
			indegree[id]++
			dependents[dep] = append(dependents[dep], id)
		}
	}

	var ready []string
	for id, deg := range indegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(plugins))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		inserted := false
		for _, dep := range dependents[id] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
				inserted = true
			}
		}
		if inserted {
			sort.Strings(ready)
		}
	}

	if len(order) != len(plugins) {
		var stuck []string
		for id, deg := range indegree {
			if deg > 0 {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("%w: involving %v", domain.ErrDependencyCycle, stuck)
	}
	return order, nil
}

// checkFieldOwnership rejects two enabled plugins claiming the same
// evidence field unless a dependency path orders their writes.
func checkFieldOwnership(plugins map[string]driven.Plugin) error {
	owners := make(map[string][]string)
	for id, p := range plugins {
		for _, f := range p.Descriptor().OwnedFields {
			owners[f] = append(owners[f], id)
		}
	}

	var fields []string
	for f := range owners {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		ids := owners[f]
		if len(ids) < 2 {
			continue
		}
		sort.Strings(ids)
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				if !connected(plugins, ids[i], ids[j]) && !connected(plugins, ids[j], ids[i]) {
					return fmt.Errorf("%w: %q claimed by %q and %q with no dependency edge",
						domain.ErrFieldConflict, f, ids[i], ids[j])
				}
			}
		}
	}
	return nil
}

// connected reports whether `to` is reachable from `from` along
// dependency edges (from depends, transitively, on to).
func connected(plugins map[string]driven.Plugin, from, to string) bool {
	seen := make(map[string]bool)
	stack := []string{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == to {
			return true
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := plugins[id]; ok {
			stack = append(stack, p.Descriptor().Dependencies...)
		}
	}
	return false
}
