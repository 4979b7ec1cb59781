package cli

import (
	"context"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ahouse2/LCAS/internal/core/domain"
	"github.com/ahouse2/LCAS/internal/logger"
)

// watchDebounce is how long to wait for the source directory to settle
// before starting a run.
const watchDebounce = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the pipeline when the source directory changes",
	Long: `Runs the pipeline once, then watches the case source directory and
re-runs after changes settle. New subdirectories are watched as they
appear. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, ai, err := loadCase()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	targetDir, err := filepath.Abs(cfg.TargetDir)
	if err != nil {
		return err
	}
	if err := watchTree(watcher, cfg.SourceDir, targetDir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func() {
		orch, err := buildOrchestrator(cfg, ai)
		if err != nil {
			logger.Warn("watch: %v", err)
			return
		}
		report, err := orch.Run(ctx)
		if err != nil {
			logger.Warn("watch: run failed: %v", err)
			return
		}
		printSummary(cmd, report)
		reportPath := filepath.Join(cfg.TargetDir, reportFileName)
		if err := writeReport(report, reportPath); err != nil {
			logger.Warn("watch: write report: %v", err)
		}
	}

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", cfg.SourceDir)
	runOnce()

	var debounce *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopping watch.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			// Pick up directories created after the watch started.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name, targetDir); err != nil {
						logger.Warn("watch: %v", err)
					}
				}
			}
			logger.Debug("watch: %s %s", event.Op, event.Name)
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case <-pending:
			runOnce()
		}
	}
}

// watchTree adds root and every subdirectory beneath it to the
// watcher. The target tree is excluded so report and preservation
// writes never retrigger a run when the target nests under the source.
func watchTree(watcher *fsnotify.Watcher, root, targetDir string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if abs, err := filepath.Abs(path); err == nil && abs == targetDir {
			return fs.SkipDir
		}
		if d.Name() == domain.PreservationDirName {
			return fs.SkipDir
		}
		return watcher.Add(path)
	})
}
