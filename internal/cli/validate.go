package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cabberley/epic-waf-actions/internal/allowlist"
	"github.com/cabberley/epic-waf-actions/internal/config"
	"github.com/cabberley/epic-waf-actions/internal/runner"
	"github.com/cabberley/epic-waf-actions/internal/template"
	"github.com/cabberley/epic-waf-actions/internal/waf"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate WAF YAML definitions against the template",
	Long: `Validate every WAF YAML definition against the check template and the
label/resource/value allow-lists.

Checks per document:
  - Mandatory top-level keys present and non-empty (template-driven)
  - Nested keys inside list- and mapping-valued fields
  - Labels and epic_resources entries against their allow-list files
  - impact/active/kql_check values against validations.yml

Output is one block per file headed by [OK], [WARN] or [FAIL].

Exit Codes:
  0 - Every file parsed and produced zero errors
  1 - At least one error, or no YAML files were found
  4 - Missing or malformed template or allow-list file`,
	Example: `  # Validate with the default layout
  wafctl validate

  # Point at another checkout
  wafctl validate --root /srv/epic --template checks/template.yml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfiguration(cmd)
		if err != nil {
			return err
		}
		return runValidate(cfg, cmd.OutOrStdout())
	},
}

func init() {
	validateCmd.Flags().String("template", "waf_check_template.yml", "Relative path to the check template")
	validateCmd.Flags().String("labels", "labels.yml", "Relative path to the allowed label names")
	validateCmd.Flags().String("validations", "validations.yml", "Relative path to the allowed scalar values")
	validateCmd.Flags().String("resources", "epic_resources.yml", "Relative path to the allowed resource names")
	validateCmd.Flags().String("pattern", "*.yml,*.yaml", "Comma-separated glob patterns for YAML files")
	rootCmd.AddCommand(validateCmd)
}

// runValidate loads the rule data, walks the WAF directory and reports per
// file. Rule loading failures are fatal; document findings never are.
func runValidate(cfg *config.Configuration, out io.Writer) error {
	top, nested, err := template.ParseFile(cfg.TemplatePath())
	if err != nil {
		return err
	}
	labels, err := allowlist.LoadLabels(cfg.LabelsPath())
	if err != nil {
		return err
	}
	validations, err := allowlist.LoadValidations(cfg.ValidationsPath(), runner.ScalarCheckKeys)
	if err != nil {
		return err
	}
	resources, err := allowlist.LoadResources(cfg.ResourcesPath())
	if err != nil {
		return err
	}

	files, err := waf.DiscoverFiles(cfg.WafDirPath(), waf.SplitPatterns(cfg.Pattern))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "No YAML files found in %s\n", cfg.WafDirPath())
		return NewExitError(ExitValidationFailed)
	}

	batch := &runner.Runner{
		Top:         top,
		Nested:      nested,
		Labels:      labels,
		Resources:   resources,
		Validations: validations,
		Out:         out,
	}
	if total := batch.Run(files); total > 0 {
		return NewExitError(ExitValidationFailed)
	}
	return nil
}
