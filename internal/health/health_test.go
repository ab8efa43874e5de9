package health

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabberley/epic-waf-actions/internal/config"
	"github.com/cabberley/epic-waf-actions/internal/testutil"
)

func healthyConfig(t *testing.T) *config.Configuration {
	t.Helper()

	root := testutil.CreateWafTree(t, map[string]string{
		"sample.yml": testutil.ValidDocument,
	})
	return &config.Configuration{
		Root:        root,
		Template:    "waf_check_template.yml",
		WafDir:      "WAF",
		Labels:      "labels.yml",
		Validations: "validations.yml",
		Resources:   "epic_resources.yml",
		OutputDir:   "excel",
		Pattern:     "*.yml,*.yaml",
	}
}

func TestRunChecks_HealthyWorkspace(t *testing.T) {
	t.Parallel()

	report := RunChecks(healthyConfig(t))
	require.NotNil(t, report)
	assert.True(t, report.Passed)
	assert.Len(t, report.Checks, 5)
	for _, check := range report.Checks {
		assert.True(t, check.Passed, "check %s: %s", check.Name, check.Message)
	}
}

func TestRunChecks_MissingTemplateStillRunsRest(t *testing.T) {
	t.Parallel()

	cfg := healthyConfig(t)
	cfg.Template = "no_such_template.yml"

	report := RunChecks(cfg)
	assert.False(t, report.Passed)
	assert.Len(t, report.Checks, 5)
	assert.False(t, report.Checks[0].Passed)
	assert.True(t, report.Checks[1].Passed, "labels check should still run")
}

func TestCheckTemplate_EmptyTemplate(t *testing.T) {
	t.Parallel()

	path := testutil.WriteFile(t, t.TempDir(), "template.yml", "# no rules here\n")
	result := CheckTemplate(path)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Message, "defines no rules")
}

func TestCheckWafDir(t *testing.T) {
	t.Parallel()

	root := testutil.CreateWafTree(t, map[string]string{
		"one.yml":  testutil.ValidDocument,
		"two.yaml": testutil.ValidDocument,
	})

	result := CheckWafDir(filepath.Join(root, "WAF"), "*.yml,*.yaml")
	assert.True(t, result.Passed)
	assert.Contains(t, result.Message, "2 files")

	result = CheckWafDir(filepath.Join(root, "missing"), "*.yml")
	assert.False(t, result.Passed)
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		report   *Report
		expected []string
	}{
		"all checks pass": {
			report: &Report{
				Checks: []CheckResult{
					{Name: "Template", Passed: true, Message: "3 top-level rules, 1 nested groups"},
					{Name: "Labels", Passed: true, Message: "3 labels"},
				},
				Passed: true,
			},
			expected: []string{
				"✓ Template: 3 top-level rules, 1 nested groups",
				"✓ Labels: 3 labels",
			},
		},
		"failed check shows message": {
			report: &Report{
				Checks: []CheckResult{
					{Name: "Labels", Passed: false, Message: "labels.yml: no such file"},
				},
			},
			expected: []string{"✗ Labels: labels.yml: no such file"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			output := FormatReport(tt.report)
			for _, want := range tt.expected {
				assert.Contains(t, output, want)
			}
		})
	}
}
