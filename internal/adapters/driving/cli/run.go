package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ahouse2/LCAS/internal/core/domain"
)

// reportFileName is written into the case target directory after every
// completed run.
const reportFileName = "lcas_report.json"

var runOutput string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full analysis pipeline",
	Long: `Executes every enabled plugin against the case source directory:
ingestion with original-file preservation, text extraction, keyword
categorisation and optional AI summaries. Writes a JSON report into
the target directory.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "",
		"report path (default <target>/"+reportFileName+")")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, ai, err := loadCase()
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(cfg, ai)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := orch.Run(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	printSummary(cmd, report)

	reportPath := runOutput
	if reportPath == "" {
		reportPath = filepath.Join(cfg.TargetDir, reportFileName)
	}
	if err := writeReport(report, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	cmd.Printf("Report written to %s\n", reportPath)

	if !report.Succeeded() {
		return fmt.Errorf("run completed with plugin failures")
	}
	return nil
}

// printSummary renders the per-plugin outcomes and category totals.
func printSummary(cmd *cobra.Command, report *domain.RunReport) {
	cmd.Printf("\nCase: %s (run %s)\n", report.CaseName, report.RunID)
	cmd.Printf("Duration: %s\n\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))

	for _, o := range report.Outcomes {
		line := fmt.Sprintf("  %-24s %-36s %s", o.PluginID, o.Status, o.Elapsed.Round(time.Millisecond))
		if o.Err != "" {
			line += "  (" + o.Err + ")"
		}
		cmd.Println(line)
	}

	if len(report.CategoryCounts) == 0 {
		return
	}

	categories := make([]string, 0, len(report.CategoryCounts))
	for c := range report.CategoryCounts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	cmd.Printf("\n%d items classified:\n", len(report.Items))
	for _, c := range categories {
		cmd.Printf("  %-32s %d\n", c, report.CategoryCounts[c])
	}
	if n := report.ReviewCount(); n > 0 {
		cmd.Printf("\n%d item(s) routed to %s\n", n, domain.ReviewCategory)
	}
}

// writeReport serialises the run report to path.
func writeReport(report *domain.RunReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
