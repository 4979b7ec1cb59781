package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/core/ports/driven"
)

// --- Mock plugin shared across registry and orchestrator tests ---

// mockPlugin implements driven.Plugin for testing.
type mockPlugin struct {
	id          string
	deps        []string
	ownedFields []string

	initErr error
	execFn  func(ctx context.Context, rc *domain.RunContext) (any, error)

	initCalled    bool
	execCalled    bool
	cleanupCalled bool
}

func (m *mockPlugin) Descriptor() domain.PluginDescriptor {
	return domain.PluginDescriptor{
		ID:           m.id,
		Version:      "0.0.1",
		Dependencies: m.deps,
		OwnedFields:  m.ownedFields,
	}
}

func (m *mockPlugin) Initialize(_ context.Context, _ *domain.RunContext) error {
	m.initCalled = true
	return m.initErr
}

func (m *mockPlugin) Execute(ctx context.Context, rc *domain.RunContext) (any, error) {
	m.execCalled = true
	if m.execFn != nil {
		return m.execFn(ctx, rc)
	}
	return m.id + "-payload", nil
}

func (m *mockPlugin) Cleanup(_ *domain.RunContext) {
	m.cleanupCalled = true
}

func newRegistry(t *testing.T, plugins ...*mockPlugin) *PluginRegistry {
	t.Helper()
	r := NewPluginRegistry()
	for _, p := range plugins {
		require.NoError(t, r.Register(p))
	}
	return r
}

func resolvedIDs(plugins []driven.Plugin) []string {
	ids := make([]string, len(plugins))
	for i, p := range plugins {
		ids[i] = p.Descriptor().ID
	}
	return ids
}

func TestRegistryRegister(t *testing.T) {
	t.Run("rejects duplicate identifier", func(t *testing.T) {
		r := NewPluginRegistry()
		require.NoError(t, r.Register(&mockPlugin{id: "a"}))

		err := r.Register(&mockPlugin{id: "a"})
		assert.ErrorIs(t, err, domain.ErrDuplicatePlugin)
	})

	t.Run("rejects empty identifier", func(t *testing.T) {
		r := NewPluginRegistry()
		err := r.Register(&mockPlugin{id: ""})
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("get returns registered plugin", func(t *testing.T) {
		r := newRegistry(t, &mockPlugin{id: "a"})

		p, ok := r.Get("a")
		require.True(t, ok)
		assert.Equal(t, "a", p.Descriptor().ID)

		_, ok = r.Get("missing")
		assert.False(t, ok)
	})
}

func TestRegistryResolveOrder(t *testing.T) {
	t.Run("dependencies come first", func(t *testing.T) {
		r := newRegistry(t,
			&mockPlugin{id: "categorize", deps: []string{"extract"}},
			&mockPlugin{id: "extract", deps: []string{"ingest"}},
			&mockPlugin{id: "ingest"},
		)

		plugins, err := r.Resolve([]string{"categorize", "extract", "ingest"})
		require.NoError(t, err)
		assert.Equal(t, []string{"ingest", "extract", "categorize"}, resolvedIDs(plugins))
	})

	t.Run("ties break by ascending identifier", func(t *testing.T) {
		r := newRegistry(t,
			&mockPlugin{id: "zeta"},
			&mockPlugin{id: "alpha"},
			&mockPlugin{id: "mid", deps: []string{"alpha", "zeta"}},
		)

		plugins, err := r.Resolve([]string{"zeta", "mid", "alpha"})
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "zeta", "mid"}, resolvedIDs(plugins))
	})

	t.Run("order is independent of enabled order", func(t *testing.T) {
		r := newRegistry(t,
			&mockPlugin{id: "b", deps: []string{"a"}},
			&mockPlugin{id: "a"},
			&mockPlugin{id: "c", deps: []string{"a"}},
		)

		first, err := r.Resolve([]string{"c", "b", "a"})
		require.NoError(t, err)
		second, err := r.Resolve([]string{"a", "b", "c"})
		require.NoError(t, err)

		assert.Equal(t, resolvedIDs(first), resolvedIDs(second))
		assert.Equal(t, []string{"a", "b", "c"}, resolvedIDs(first))
	})
}

func TestRegistryResolveErrors(t *testing.T) {
	t.Run("unknown plugin", func(t *testing.T) {
		r := newRegistry(t, &mockPlugin{id: "a"})

		_, err := r.Resolve([]string{"a", "ghost"})
		assert.ErrorIs(t, err, domain.ErrUnknownPlugin)
	})

	t.Run("plugin enabled twice", func(t *testing.T) {
		r := newRegistry(t, &mockPlugin{id: "a"})

		_, err := r.Resolve([]string{"a", "a"})
		assert.ErrorIs(t, err, domain.ErrDuplicatePlugin)
	})

	t.Run("dependency not enabled", func(t *testing.T) {
		r := newRegistry(t,
			&mockPlugin{id: "a"},
			&mockPlugin{id: "b", deps: []string{"a"}},
		)

		_, err := r.Resolve([]string{"b"})
		assert.ErrorIs(t, err, domain.ErrDependencyNotEnabled)
	})

	t.Run("dependency cycle", func(t *testing.T) {
		r := newRegistry(t,
			&mockPlugin{id: "a", deps: []string{"c"}},
			&mockPlugin{id: "b", deps: []string{"a"}},
			&mockPlugin{id: "c", deps: []string{"b"}},
		)

		_, err := r.Resolve([]string{"a", "b", "c"})
		assert.ErrorIs(t, err, domain.ErrDependencyCycle)
	})
}

func TestRegistryFieldOwnership(t *testing.T) {
	t.Run("unordered claimants conflict", func(t *testing.T) {
		r := newRegistry(t,
			&mockPlugin{id: "a", ownedFields: []string{domain.FieldText}},
			&mockPlugin{id: "b", ownedFields: []string{domain.FieldText}},
		)

		_, err := r.Resolve([]string{"a", "b"})
		assert.ErrorIs(t, err, domain.ErrFieldConflict)
	})

	t.Run("dependency path permits shared claim", func(t *testing.T) {
		r := newRegistry(t,
			&mockPlugin{id: "a", ownedFields: []string{domain.FieldText}},
			&mockPlugin{id: "b", deps: []string{"a"}, ownedFields: []string{domain.FieldText}},
		)

		_, err := r.Resolve([]string{"a", "b"})
		assert.NoError(t, err)
	})

	t.Run("transitive path permits shared claim", func(t *testing.T) {
		r := newRegistry(t,
			&mockPlugin{id: "a", ownedFields: []string{domain.FieldText}},
			&mockPlugin{id: "b", deps: []string{"a"}},
			&mockPlugin{id: "c", deps: []string{"b"}, ownedFields: []string{domain.FieldText}},
		)

		_, err := r.Resolve([]string{"a", "b", "c"})
		assert.NoError(t, err)
	})
}
