// Package runner drives batch validation: it walks the discovered WAF files in
// order, validates each against the loaded rules, prints one report block per
// file and accumulates the total error count that decides the exit status.
package runner

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/cabberley/epic-waf-actions/internal/allowlist"
	"github.com/cabberley/epic-waf-actions/internal/template"
	"github.com/cabberley/epic-waf-actions/internal/validation"
	"github.com/cabberley/epic-waf-actions/internal/waf"
)

// ScalarCheckKeys are the document keys checked against the scalar
// allow-lists, in reporting order. LoadValidations requires all of them to be
// defined, so lookups in Runner cannot miss.
var ScalarCheckKeys = []string{"impact", "active", "kql_check"}

// Runner bundles the static rule data for one batch run. The rule tables and
// allow-lists are loaded once and never mutated while files are processed.
type Runner struct {
	Top         template.TopLevelRules
	Nested      template.NestedRules
	Labels      allowlist.Set
	Resources   allowlist.Set
	Validations map[string]allowlist.Set

	Out io.Writer
}

var (
	failMark = color.New(color.FgRed, color.Bold).SprintFunc()
	warnMark = color.New(color.FgYellow, color.Bold).SprintFunc()
	okMark   = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// Run validates every file in order and returns the total error count. Parse
// failures are reported per file and never abort the batch.
func (r *Runner) Run(files []string) int {
	totalErrors := 0
	for _, path := range files {
		totalErrors += r.runFile(path)
	}
	return totalErrors
}

// runFile validates a single file and prints its report block.
func (r *Runner) runFile(path string) int {
	document, err := waf.LoadYAML(path)
	if err != nil {
		fmt.Fprintf(r.Out, "%s %s: unable to load YAML (%v)\n", failMark("[FAIL]"), path, err)
		return 1
	}

	result := r.Validate(document)

	switch {
	case result.HasErrors():
		fmt.Fprintf(r.Out, "%s %s\n", failMark("[FAIL]"), path)
		for _, issue := range result.Errors {
			fmt.Fprintf(r.Out, "  - %s\n", issue)
		}
		for _, warning := range result.Warnings {
			fmt.Fprintf(r.Out, "  - WARNING: %s\n", warning)
		}
	case len(result.Warnings) > 0:
		fmt.Fprintf(r.Out, "%s %s\n", warnMark("[WARN]"), path)
		for _, warning := range result.Warnings {
			fmt.Fprintf(r.Out, "  - WARNING: %s\n", warning)
		}
	default:
		fmt.Fprintf(r.Out, "%s   %s\n", okMark("[OK]"), path)
	}

	return len(result.Errors)
}

// Validate runs the template-driven document validation plus the allow-list
// checks layered on top: label membership, the scalar allow-lists, and epic
// resource membership.
func (r *Runner) Validate(document any) *validation.Result {
	result := validation.Document(document, r.Top, r.Nested)

	doc, ok := document.(map[string]any)
	if !ok {
		return result
	}

	if labels := doc["labels"]; waf.HasValue(labels) {
		result.Errors = append(result.Errors,
			validation.StringList("labels", labels, r.Labels, "labels.yml")...)
	}

	for _, key := range ScalarCheckKeys {
		if value, inDoc := doc[key]; inDoc {
			result.Errors = append(result.Errors,
				validation.AllowedValue(key, value, r.Validations[key])...)
		}
	}

	if resources := doc["epic_resources"]; waf.HasValue(resources) {
		result.Errors = append(result.Errors,
			validation.StringList("epic_resources", resources, r.Resources, "epic_resources.yml")...)
	}

	return result
}
