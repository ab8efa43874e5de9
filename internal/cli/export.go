package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cabberley/epic-waf-actions/internal/config"
	"github.com/cabberley/epic-waf-actions/internal/export"
	"github.com/cabberley/epic-waf-actions/internal/progress"
	"github.com/cabberley/epic-waf-actions/internal/waf"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export active WAF entries to an Excel workbook",
	Long: `Export the active WAF YAML definitions into a timestamped Excel
workbook, one row per entry with columns collected across all entries.

Entries whose 'active' value is falsey (false, "false", "0", "no") are
skipped. Label lists are newline-joined into a single wrapped cell.`,
	Example: `  # Export into ./excel
  wafctl export

  # Export another tree into a custom directory
  wafctl export --root /srv/epic --output-dir /tmp/reports`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfiguration(cmd)
		if err != nil {
			return err
		}
		return runExport(cfg, cmd)
	},
}

func init() {
	exportCmd.Flags().String("output-dir", "excel", "Directory that receives the generated workbook")
	exportCmd.Flags().String("pattern", "*.yml,*.yaml", "Comma-separated glob patterns for YAML files")
	exportCmd.Flags().Bool("no-progress", false, "Disable the progress spinner")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cfg *config.Configuration, cmd *cobra.Command) error {
	files, err := waf.DiscoverFiles(cfg.WafDirPath(), waf.SplitPatterns(cfg.Pattern))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no YAML files found in %s", cfg.WafDirPath())
	}

	// Workbook rows follow file name order, case-insensitively.
	sort.SliceStable(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	noProgress, _ := cmd.Flags().GetBool("no-progress")
	var display *progress.Display
	if cfg.ShowProgress && !noProgress {
		display = progress.NewDisplay(progress.DetectTerminalCapabilities())
		display.Start(fmt.Sprintf("Exporting %d WAF definitions", len(files)))
	}

	documents, err := export.LoadDocuments(files)
	if err == nil {
		var outputPath string
		outputPath, err = export.Write(documents, cfg.OutputDirPath(), time.Now())
		if err == nil {
			if display != nil {
				display.Complete(fmt.Sprintf("Workbook created: %s", outputPath))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Workbook created: %s\n", outputPath)
			}
			return nil
		}
	}

	if display != nil {
		display.Fail("Export failed", err)
		return NewExitError(ExitBadConfiguration)
	}
	return err
}
