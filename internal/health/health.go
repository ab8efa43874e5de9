// Package health verifies that a workspace's rule files are present and
// loadable before a validation or export run is attempted.
package health

import (
	"fmt"
	"os"

	"github.com/cabberley/epic-waf-actions/internal/allowlist"
	"github.com/cabberley/epic-waf-actions/internal/config"
	"github.com/cabberley/epic-waf-actions/internal/runner"
	"github.com/cabberley/epic-waf-actions/internal/template"
	"github.com/cabberley/epic-waf-actions/internal/waf"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// Report contains all health check results
type Report struct {
	Checks []CheckResult
	Passed bool
}

// RunChecks checks every configured input of the workspace and returns a
// report. A failed check never aborts the run; later checks still execute.
func RunChecks(cfg *config.Configuration) *Report {
	report := &Report{
		Checks: make([]CheckResult, 0),
		Passed: true,
	}

	for _, check := range []CheckResult{
		CheckTemplate(cfg.TemplatePath()),
		CheckLabels(cfg.LabelsPath()),
		CheckValidations(cfg.ValidationsPath()),
		CheckResources(cfg.ResourcesPath()),
		CheckWafDir(cfg.WafDirPath(), cfg.Pattern),
	} {
		report.Checks = append(report.Checks, check)
		if !check.Passed {
			report.Passed = false
		}
	}

	return report
}

// FormatReport formats the health report for console output
func FormatReport(report *Report) string {
	var output string

	for _, check := range report.Checks {
		if check.Passed {
			output += fmt.Sprintf("✓ %s: %s\n", check.Name, check.Message)
		} else {
			output += fmt.Sprintf("✗ %s: %s\n", check.Name, check.Message)
		}
	}

	return output
}

// CheckTemplate checks that the rule template parses and defines rules.
func CheckTemplate(path string) CheckResult {
	top, nested, err := template.ParseFile(path)
	if err != nil {
		return CheckResult{Name: "Template", Message: err.Error()}
	}
	if len(top) == 0 {
		return CheckResult{
			Name:    "Template",
			Message: fmt.Sprintf("%s defines no rules", path),
		}
	}

	return CheckResult{
		Name:    "Template",
		Passed:  true,
		Message: fmt.Sprintf("%d top-level rules, %d nested groups", len(top), len(nested)),
	}
}

// CheckLabels checks that the label allow-list loads.
func CheckLabels(path string) CheckResult {
	labels, err := allowlist.LoadLabels(path)
	if err != nil {
		return CheckResult{Name: "Labels", Message: err.Error()}
	}

	return CheckResult{
		Name:    "Labels",
		Passed:  true,
		Message: fmt.Sprintf("%d labels", len(labels)),
	}
}

// CheckValidations checks that the scalar validation file loads and covers
// every checked key.
func CheckValidations(path string) CheckResult {
	validations, err := allowlist.LoadValidations(path, runner.ScalarCheckKeys)
	if err != nil {
		return CheckResult{Name: "Validations", Message: err.Error()}
	}

	return CheckResult{
		Name:    "Validations",
		Passed:  true,
		Message: fmt.Sprintf("%d validated keys", len(validations)),
	}
}

// CheckResources checks that the resource allow-list loads.
func CheckResources(path string) CheckResult {
	resources, err := allowlist.LoadResources(path)
	if err != nil {
		return CheckResult{Name: "Resources", Message: err.Error()}
	}

	return CheckResult{
		Name:    "Resources",
		Passed:  true,
		Message: fmt.Sprintf("%d resources", len(resources)),
	}
}

// CheckWafDir checks that the document directory exists and reports how many
// files the configured patterns match. Zero matches is not a failure; an
// empty workspace is still a healthy one.
func CheckWafDir(dir, patternSpec string) CheckResult {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return CheckResult{
			Name:    "WAF directory",
			Message: fmt.Sprintf("%s is not a directory", dir),
		}
	}

	files, err := waf.DiscoverFiles(dir, waf.SplitPatterns(patternSpec))
	if err != nil {
		return CheckResult{Name: "WAF directory", Message: err.Error()}
	}

	return CheckResult{
		Name:    "WAF directory",
		Passed:  true,
		Message: fmt.Sprintf("%d files match %q", len(files), patternSpec),
	}
}
