// Package ingestion discovers evidence files, preserves originals and
// establishes the integrity trail.
package ingestion

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/core/ports/driven"
	"github.com/ahouse2/LCAS/internal/logger"
)

// ID is the plugin identifier downstream plugins declare as a dependency.
const ID = "file-ingestion"

// Ensure Plugin implements the interface.
var _ driven.Plugin = (*Plugin)(nil)

// Plugin walks the case source directory, creates one evidence item per
// discovered file and, when configured, copies each original into the
// preservation folder with digest verification. It is the only plugin
// that appends to the run's item set; every downstream plugin depends
// on it, which establishes the ingestion barrier.
type Plugin struct {
	digester driven.Digester
}

// New creates the ingestion plugin.
func New(digester driven.Digester) *Plugin {
	return &Plugin{digester: digester}
}

// Descriptor returns the plugin's static metadata.
func (p *Plugin) Descriptor() domain.PluginDescriptor {
	return domain.PluginDescriptor{
		ID:          ID,
		Version:     "1.1.0",
		Capability:  domain.CapabilityIngestion,
		OwnedFields: []string{domain.FieldIdentity},
	}
}

// Initialize prepares the target directory tree.
func (p *Plugin) Initialize(_ context.Context, rc *domain.RunContext) error {
	cfg := rc.Config
	if err := os.MkdirAll(cfg.TargetDir, 0o700); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}
	if cfg.PreserveOriginals {
		dir := filepath.Join(cfg.TargetDir, domain.PreservationDirName)
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create preservation directory: %w", err)
		}
	}
	return nil
}

// PreservationRecord pairs an original with its verified backup copy.
type PreservationRecord struct {
	OriginalPath string `json:"original_path"`
	BackupPath   string `json:"backup_path"`
	Digest       string `json:"digest"`
	BackupDigest string `json:"backup_digest"`
	Verified     bool   `json:"verified"`
}

// Summary is the plugin's payload: ingestion counts and the integrity
// trail for preserved originals.
type Summary struct {
	Scanned   int                  `json:"scanned"`
	Ingested  int                  `json:"ingested"`
	Preserved int                  `json:"preserved"`
	Skipped   int                  `json:"skipped"`
	Records   []PreservationRecord `json:"records,omitempty"`
}

// Execute discovers files in lexical walk order and appends one
// evidence item per file. Discovery order is the report's item order.
func (p *Plugin) Execute(ctx context.Context, rc *domain.RunContext) (any, error) {
	cfg := rc.Config
	srcDir, err := filepath.Abs(cfg.SourceDir)
	if err != nil {
		return nil, err
	}
	targetDir, _ := filepath.Abs(cfg.TargetDir)

	summary := &Summary{}
	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			// Never ingest our own output when target nests under source.
			if path == targetDir {
				return fs.SkipDir
			}
			return nil
		}
		summary.Scanned++
		if cfg.MaxItems > 0 && summary.Ingested >= cfg.MaxItems {
			summary.Skipped++
			return nil
		}

		item, rec, itemErr := p.ingestOne(srcDir, path, cfg)
		if itemErr != nil {
			logger.Warn("Ingestion: %s: %v", path, itemErr)
			summary.Skipped++
			return nil
		}
		rc.AppendItem(item)
		summary.Ingested++
		if rec != nil {
			summary.Records = append(summary.Records, *rec)
			summary.Preserved++
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", srcDir, walkErr)
	}

	logger.Info("Ingested %d of %d scanned files", summary.Ingested, summary.Scanned)
	return summary, nil
}

// Cleanup releases nothing; ingestion holds no resources across calls.
func (p *Plugin) Cleanup(_ *domain.RunContext) {}

// ingestOne digests a single file, derives its stable identifier and
// optionally preserves a verified copy of the original.
func (p *Plugin) ingestOne(srcDir, path string, cfg *domain.CaseConfig) (*domain.EvidenceItem, *PreservationRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}

	digest, err := p.digester.SumFile(path)
	if err != nil {
		return nil, nil, err
	}

	rel, err := filepath.Rel(srcDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}

	item := &domain.EvidenceItem{
		ID:           p.digester.Sum([]byte(path + ":" + digest))[:16],
		OriginalPath: path,
		RelPath:      rel,
		Size:         info.Size(),
		Digest:       digest,
		DiscoveredAt: time.Now(),
	}

	if !cfg.PreserveOriginals {
		return item, nil, nil
	}

	backupPath, err := copyFile(path,
		filepath.Join(cfg.TargetDir, domain.PreservationDirName, filepath.FromSlash(rel)))
	if err != nil {
		return nil, nil, fmt.Errorf("preserve original: %w", err)
	}
	backupDigest, err := p.digester.SumFile(backupPath)
	if err != nil {
		return nil, nil, fmt.Errorf("verify backup: %w", err)
	}

	rec := &PreservationRecord{
		OriginalPath: path,
		BackupPath:   backupPath,
		Digest:       digest,
		BackupDigest: backupDigest,
		Verified:     backupDigest == digest,
	}
	if !rec.Verified {
		logger.Warn("Integrity mismatch preserving %s", rel)
	}
	return item, rec, nil
}

// copyFile copies src to dst, creating parent directories and avoiding
// name clashes by never overwriting an existing backup. Returns the
// path actually written, which differs from dst on a clash.
func copyFile(src, dst string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return "", err
	}
	if _, err := os.Stat(dst); err == nil {
		dst = uniquePath(dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	return dst, out.Close()
}

// uniquePath appends a counter before the extension until the path is
// free, mirroring how clashing evidence names are disambiguated.
func uniquePath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
