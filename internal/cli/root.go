// Package cli provides the Cobra-based commands for the wafctl tool: batch
// validation of WAF YAML documents against the check template, and export of
// the active entries into an Excel workbook.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cabberley/epic-waf-actions/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "wafctl",
	Short: "Epic WAF checklist tooling",
	Long: `Epic WAF checklist tooling

Validates the WAF YAML definitions against the check template and the
label/resource/value allow-lists, and exports the active entries into an
Excel workbook.`,
	Example: `  # Validate every WAF definition under ./WAF
  wafctl validate

  # Validate a different tree
  wafctl validate --root /srv/waf --waf-dir definitions

  # Export the active entries to excel/WAF-version-<timestamp>.xlsx
  wafctl export`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", ".wafctl/config.json", "Path to config file")
	rootCmd.PersistentFlags().String("root", ".", "Base directory containing the template and WAF folder")
	rootCmd.PersistentFlags().String("waf-dir", "WAF", "Relative path to the folder with WAF YAML definitions")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n\n%s", err, cmd.UsageString())
		return NewExitError(ExitInvalidArguments)
	})
}

// loadConfiguration loads the layered configuration and applies any flags the
// user set explicitly, which override every other source.
func loadConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	applyStringFlag(cmd, "root", &cfg.Root)
	applyStringFlag(cmd, "waf-dir", &cfg.WafDir)
	applyStringFlag(cmd, "template", &cfg.Template)
	applyStringFlag(cmd, "labels", &cfg.Labels)
	applyStringFlag(cmd, "validations", &cfg.Validations)
	applyStringFlag(cmd, "resources", &cfg.Resources)
	applyStringFlag(cmd, "output-dir", &cfg.OutputDir)
	applyStringFlag(cmd, "pattern", &cfg.Pattern)

	return cfg, nil
}

func applyStringFlag(cmd *cobra.Command, name string, target *string) {
	if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
		*target = flag.Value.String()
	}
}
