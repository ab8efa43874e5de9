package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cabberley/epic-waf-actions/internal/health"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the workspace rule files are loadable",
	Long: `Check every configured input without validating any documents.

This command checks:
  - The check template parses and defines at least one rule
  - The label, validation and resource allow-lists load
  - The WAF directory exists and reports how many files match the pattern

Each check displays a ✓ if passed or ✗ with an error message if failed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfiguration(cmd)
		if err != nil {
			return err
		}

		report := health.RunChecks(cfg)
		fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

		if !report.Passed {
			return NewExitError(ExitBadConfiguration)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
