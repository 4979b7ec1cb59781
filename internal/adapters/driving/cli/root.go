// Package cli provides the command-line interface for LCAS.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ahouse2/LCAS/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "lcas",
	Short: "Legal Case-Building and Analysis System",
	Long: `LCAS organises raw legal evidence into an argument-ready folder
structure. It ingests source files, preserves originals with integrity
digests, extracts text, and categorises each item against a keyword
taxonomy, routing low-confidence matches to human review.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "lcas.toml",
		"path to the case configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
