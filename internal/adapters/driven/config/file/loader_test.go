package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahouse2/LCAS/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lcas.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full configuration", func(t *testing.T) {
		path := writeConfig(t, `
case_name = "Doe v. Doe"
source_dir = "/cases/doe/evidence"
target_dir = "/cases/doe/organised"
enabled_plugins = ["file-ingestion", "content-extraction", "evidence-categorization"]
preserve_originals = true
max_items = 500
plugin_timeout = "90s"
confidence_threshold = 0.4

[plugin_options.content-extraction]
skip_extensions = [".mp4", ".mov"]

[ai]
provider = "anthropic"
model = "claude-3-5-haiku-latest"
api_key_env = "ANTHROPIC_API_KEY"
requests_per_minute = 30

[[taxonomy]]
name = "ELECTRONIC_ABUSE"
keywords = ["spyware", "surveillance"]

[[taxonomy]]
name = "FRAUD_ON_THE_COURT"
keywords = ["fraud", "perjury"]

  [[taxonomy.children]]
  name = "PERJURY"
  keywords = ["false statement"]
`)

		cfg, ai, err := NewLoader().LoadWithAI(path)
		require.NoError(t, err)

		assert.Equal(t, "Doe v. Doe", cfg.CaseName)
		assert.Equal(t, "/cases/doe/evidence", cfg.SourceDir)
		assert.Equal(t, "/cases/doe/organised", cfg.TargetDir)
		assert.True(t, cfg.PreserveOriginals)
		assert.Equal(t, 500, cfg.MaxItems)
		assert.Equal(t, 90*time.Second, cfg.PluginTimeout)
		assert.Equal(t, 0.4, cfg.ConfidenceThreshold)
		assert.Equal(t,
			[]string{"file-ingestion", "content-extraction", "evidence-categorization"},
			cfg.EnabledPlugins)

		skip := cfg.Options("content-extraction")["skip_extensions"]
		assert.Equal(t, []any{".mp4", ".mov"}, skip)

		require.NotNil(t, ai)
		assert.Equal(t, "anthropic", ai.Provider)
		assert.Equal(t, "claude-3-5-haiku-latest", ai.Model)
		assert.Equal(t, "ANTHROPIC_API_KEY", ai.APIKeyEnv)
		assert.Equal(t, 30, ai.RequestsPerMinute)

		require.NotNil(t, cfg.Taxonomy)
		require.Len(t, cfg.Taxonomy.Nodes, 3) // two declared plus appended review node
		assert.Equal(t, "ELECTRONIC_ABUSE", cfg.Taxonomy.Nodes[0].Name)
		require.Len(t, cfg.Taxonomy.Nodes[1].Children, 1)
		assert.Equal(t, "PERJURY", cfg.Taxonomy.Nodes[1].Children[0].Name)
		assert.Equal(t, domain.ReviewCategory, cfg.Taxonomy.Nodes[2].Name)
		assert.NoError(t, cfg.Taxonomy.Validate())
	})

	t.Run("defaults applied to a minimal file", func(t *testing.T) {
		path := writeConfig(t, `
case_name = "Minimal"
source_dir = "/src"
target_dir = "/dst"
`)

		cfg, ai, err := NewLoader().LoadWithAI(path)
		require.NoError(t, err)

		assert.Equal(t, domain.DefaultPluginTimeout, cfg.PluginTimeout)
		assert.Equal(t, domain.DefaultConfidenceThreshold, cfg.ConfidenceThreshold)
		require.NotNil(t, cfg.Taxonomy)
		assert.NoError(t, cfg.Taxonomy.Validate())
		assert.Empty(t, ai.Provider)
	})

	t.Run("custom review category name", func(t *testing.T) {
		path := writeConfig(t, `
case_name = "Custom"
source_dir = "/src"
target_dir = "/dst"
review_category = "NEEDS_EYES"

[[taxonomy]]
name = "A"
keywords = ["x"]
`)

		cfg, _, err := NewLoader().LoadWithAI(path)
		require.NoError(t, err)
		assert.Equal(t, "NEEDS_EYES", cfg.Taxonomy.ReviewNode)
		assert.Equal(t, "NEEDS_EYES", cfg.Taxonomy.Nodes[1].Name)
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := writeConfig(t, `case_name = "unterminated`)

		_, err := NewLoader().Load(path)
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("invalid timeout", func(t *testing.T) {
		path := writeConfig(t, `
case_name = "Bad"
source_dir = "/src"
target_dir = "/dst"
plugin_timeout = "three minutes"
`)

		_, err := NewLoader().Load(path)
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}
