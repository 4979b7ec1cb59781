package aisummary

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/core/ports/driven"
)

// mockAIService implements driven.AIService.
type mockAIService struct {
	pingErr      error
	summariseErr error
	summarised   []string
	closed       bool
}

func (m *mockAIService) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	return "", nil
}

func (m *mockAIService) Summarise(_ context.Context, content string, _ int) (string, error) {
	if m.summariseErr != nil {
		return "", m.summariseErr
	}
	m.summarised = append(m.summarised, content)
	return "abstract of " + content[:min(len(content), 10)], nil
}

func (m *mockAIService) ModelName() string            { return "mock/model" }
func (m *mockAIService) Ping(_ context.Context) error { return m.pingErr }

func (m *mockAIService) Close() error {
	m.closed = true
	return nil
}

func testRunContext(opts map[string]any, items ...*domain.EvidenceItem) *domain.RunContext {
	cfg := &domain.CaseConfig{}
	cfg.Normalise()
	if opts != nil {
		cfg.PluginOptions[ID] = opts
	}
	rc := domain.NewRunContext(cfg)
	for _, item := range items {
		rc.AppendItem(item)
	}
	return rc
}

func TestInitialize(t *testing.T) {
	t.Run("nil service is unavailable", func(t *testing.T) {
		err := New(nil).Initialize(context.Background(), testRunContext(nil))
		assert.ErrorIs(t, err, domain.ErrAIUnavailable)
	})

	t.Run("unreachable provider is unavailable", func(t *testing.T) {
		ai := &mockAIService{pingErr: domain.ErrAuthInvalid}
		err := New(ai).Initialize(context.Background(), testRunContext(nil))
		assert.ErrorIs(t, err, domain.ErrAIUnavailable)
	})

	t.Run("reachable provider passes", func(t *testing.T) {
		err := New(&mockAIService{}).Initialize(context.Background(), testRunContext(nil))
		assert.NoError(t, err)
	})
}

func TestExecute(t *testing.T) {
	t.Run("summarises items with text", func(t *testing.T) {
		withText := &domain.EvidenceItem{RelPath: "a.txt", Text: "long extracted body", TextOK: true}
		without := &domain.EvidenceItem{RelPath: "b.bin"}
		rc := testRunContext(nil, withText, without)

		ai := &mockAIService{}
		p := New(ai)
		require.NoError(t, p.Initialize(context.Background(), rc))
		payload, err := p.Execute(context.Background(), rc)
		require.NoError(t, err)

		assert.NotEmpty(t, withText.Summary)
		assert.Empty(t, without.Summary)

		summary := payload.(*Summary)
		assert.Equal(t, "mock/model", summary.Model)
		assert.Equal(t, 1, summary.Summarised)
		assert.Equal(t, 1, summary.Skipped)
	})

	t.Run("text sent to provider is bounded", func(t *testing.T) {
		item := &domain.EvidenceItem{
			RelPath: "big.txt",
			Text:    strings.Repeat("x", 10000),
			TextOK:  true,
		}
		rc := testRunContext(map[string]any{"max_chars": int64(100)}, item)

		ai := &mockAIService{}
		p := New(ai)
		require.NoError(t, p.Initialize(context.Background(), rc))
		_, err := p.Execute(context.Background(), rc)
		require.NoError(t, err)

		require.Len(t, ai.summarised, 1)
		assert.Len(t, ai.summarised[0], 100)
	})

	t.Run("provider error fails the plugin", func(t *testing.T) {
		item := &domain.EvidenceItem{RelPath: "a.txt", Text: "body", TextOK: true}
		rc := testRunContext(nil, item)

		ai := &mockAIService{summariseErr: domain.ErrRateLimited}
		p := New(ai)
		require.NoError(t, p.Initialize(context.Background(), rc))
		_, err := p.Execute(context.Background(), rc)
		assert.ErrorIs(t, err, domain.ErrRateLimited)
		assert.Empty(t, item.Summary)
	})
}

func TestCleanup(t *testing.T) {
	ai := &mockAIService{}
	p := New(ai)
	p.Cleanup(nil)
	assert.True(t, ai.closed)

	// Nil service tolerated.
	New(nil).Cleanup(nil)
}
