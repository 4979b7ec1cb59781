package cli

import (
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration without running",
	Long: `Checks the case configuration, plugin dependency graph and field
ownership claims, then prints the resolved execution order. Nothing
is executed and no files are touched.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, ai, err := loadCase()
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(cfg, ai)
	if err != nil {
		return err
	}

	order, err := orch.Validate()
	if err != nil {
		return err
	}

	cmd.Printf("Configuration valid: %s\n", cfg.CaseName)
	cmd.Printf("Source: %s\n", cfg.SourceDir)
	cmd.Printf("Target: %s\n", cfg.TargetDir)
	cmd.Println("Execution order:")
	for i, id := range order {
		cmd.Printf("  %d. %s\n", i+1, id)
	}
	return nil
}
