package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahouse2/LCAS/internal/adapters/driven/digest"
	"github.com/ahouse2/LCAS/internal/core/domain"
)

func testCase(t *testing.T, files map[string]string) *domain.RunContext {
	t.Helper()
	cfg := &domain.CaseConfig{
		CaseName:  "Doe v. Doe",
		SourceDir: t.TempDir(),
		TargetDir: t.TempDir(),
	}
	cfg.Normalise()

	for rel, content := range files {
		path := filepath.Join(cfg.SourceDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return domain.NewRunContext(cfg)
}

func runPlugin(t *testing.T, rc *domain.RunContext) *Summary {
	t.Helper()
	p := New(digest.New())
	require.NoError(t, p.Initialize(context.Background(), rc))
	payload, err := p.Execute(context.Background(), rc)
	require.NoError(t, err)
	defer p.Cleanup(rc)

	summary, ok := payload.(*Summary)
	require.True(t, ok)
	return summary
}

func TestExecute(t *testing.T) {
	t.Run("discovers files in lexical order", func(t *testing.T) {
		rc := testCase(t, map[string]string{
			"b.txt":        "bravo",
			"a.txt":        "alpha",
			"nested/c.txt": "charlie",
		})

		summary := runPlugin(t, rc)
		assert.Equal(t, 3, summary.Scanned)
		assert.Equal(t, 3, summary.Ingested)

		items := rc.Items()
		require.Len(t, items, 3)
		assert.Equal(t, "a.txt", items[0].RelPath)
		assert.Equal(t, "b.txt", items[1].RelPath)
		assert.Equal(t, filepath.Join("nested", "c.txt"), items[2].RelPath)
	})

	t.Run("items carry identity and digest", func(t *testing.T) {
		rc := testCase(t, map[string]string{"a.txt": "alpha"})

		runPlugin(t, rc)
		items := rc.Items()
		require.Len(t, items, 1)

		item := items[0]
		assert.Len(t, item.ID, 16)
		assert.Len(t, item.Digest, 64)
		assert.Equal(t, int64(5), item.Size)
		assert.False(t, item.DiscoveredAt.IsZero())
		assert.True(t, filepath.IsAbs(item.OriginalPath))
	})

	t.Run("identical content in different files gets distinct identities", func(t *testing.T) {
		rc := testCase(t, map[string]string{
			"a.txt": "same",
			"b.txt": "same",
		})

		runPlugin(t, rc)
		items := rc.Items()
		require.Len(t, items, 2)
		assert.NotEqual(t, items[0].ID, items[1].ID)
		assert.Equal(t, items[0].Digest, items[1].Digest)
	})

	t.Run("max items caps ingestion", func(t *testing.T) {
		rc := testCase(t, map[string]string{
			"a.txt": "1", "b.txt": "2", "c.txt": "3",
		})
		rc.Config.MaxItems = 2

		summary := runPlugin(t, rc)
		assert.Equal(t, 3, summary.Scanned)
		assert.Equal(t, 2, summary.Ingested)
		assert.Equal(t, 1, summary.Skipped)
		assert.Equal(t, 2, rc.ItemCount())
	})

	t.Run("skips target directory nested under source", func(t *testing.T) {
		rc := testCase(t, map[string]string{"a.txt": "alpha"})
		rc.Config.TargetDir = filepath.Join(rc.Config.SourceDir, "out")
		require.NoError(t, os.MkdirAll(rc.Config.TargetDir, 0o700))
		require.NoError(t, os.WriteFile(
			filepath.Join(rc.Config.TargetDir, "stale.txt"), []byte("x"), 0o600))

		summary := runPlugin(t, rc)
		assert.Equal(t, 1, summary.Ingested)
		require.Len(t, rc.Items(), 1)
		assert.Equal(t, "a.txt", rc.Items()[0].RelPath)
	})

	t.Run("observes cancellation", func(t *testing.T) {
		rc := testCase(t, map[string]string{"a.txt": "alpha"})

		p := New(digest.New())
		require.NoError(t, p.Initialize(context.Background(), rc))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := p.Execute(ctx, rc)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPreservation(t *testing.T) {
	t.Run("copies originals with verified digests", func(t *testing.T) {
		rc := testCase(t, map[string]string{
			"a.txt":        "alpha",
			"nested/c.txt": "charlie",
		})
		rc.Config.PreserveOriginals = true

		summary := runPlugin(t, rc)
		assert.Equal(t, 2, summary.Preserved)
		require.Len(t, summary.Records, 2)

		for _, rec := range summary.Records {
			assert.True(t, rec.Verified)
			assert.Equal(t, rec.Digest, rec.BackupDigest)

			data, err := os.ReadFile(rec.BackupPath)
			require.NoError(t, err)
			original, err := os.ReadFile(rec.OriginalPath)
			require.NoError(t, err)
			assert.Equal(t, original, data)
		}

		preserved := filepath.Join(rc.Config.TargetDir, domain.PreservationDirName)
		_, err := os.Stat(filepath.Join(preserved, "nested", "c.txt"))
		assert.NoError(t, err)
	})

	t.Run("existing backup is never overwritten", func(t *testing.T) {
		rc := testCase(t, map[string]string{"a.txt": "new content"})
		rc.Config.PreserveOriginals = true

		stale := filepath.Join(rc.Config.TargetDir, domain.PreservationDirName, "a.txt")
		require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o700))
		require.NoError(t, os.WriteFile(stale, []byte("earlier run"), 0o600))

		summary := runPlugin(t, rc)
		require.Len(t, summary.Records, 1)
		assert.NotEqual(t, stale, summary.Records[0].BackupPath)

		data, err := os.ReadFile(stale)
		require.NoError(t, err)
		assert.Equal(t, "earlier run", string(data))
	})
}

func TestDescriptor(t *testing.T) {
	desc := New(digest.New()).Descriptor()
	assert.Equal(t, ID, desc.ID)
	assert.Equal(t, domain.CapabilityIngestion, desc.Capability)
	assert.Empty(t, desc.Dependencies)
	assert.Contains(t, desc.OwnedFields, domain.FieldIdentity)
}
