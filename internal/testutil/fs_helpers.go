// Package testutil provides test fixtures for wafctl tests: temp directories
// populated with a check template, allow-list files and WAF documents.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DefaultTemplate is a small but representative check template covering
// top-level keys, a nested list parent and the soft-warning keys.
const DefaultTemplate = `name: mandatory
description: mandatory
impact: mandatory
active: mandatory
kql_check: mandatory
end_date: mandatory
labels: mandatory
specs: mandatory
epic_resources: mandatory
environments: mandatory
  - name: mandatory
  - region: optional
owner: optional
`

// DefaultLabels matches the label names used by ValidDocument.
const DefaultLabels = `labels:
  - security
  - reliability
  - cost
`

// DefaultValidations matches the scalar values used by ValidDocument.
const DefaultValidations = `impact:
  - high
  - medium
  - low
active:
  - true
  - false
kql_check:
  - enabled
  - disabled
`

// DefaultResources nests resource names under arbitrary grouping keys the way
// the real epic_resources.yml does.
const DefaultResources = `azure:
  compute:
    - vm-scale-set
    - app-service
  storage:
    - blob-store
standalone: key-vault
`

// ValidDocument passes validation against the default fixtures with no
// findings.
const ValidDocument = `name: sample check
description: something worth checking
impact: high
active: true
kql_check: enabled
end_date: null
labels:
  - security
specs:
  - spec-001
epic_resources:
  - vm-scale-set
environments:
  - name: prod
    region: westeurope
owner: platform-team
`

// WriteFile writes content into dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// CreateRuleFixtures writes the default template and allow-list files into
// root and returns their paths in template, labels, validations, resources
// order.
func CreateRuleFixtures(t *testing.T, root string) (string, string, string, string) {
	t.Helper()

	templatePath := WriteFile(t, root, "waf_check_template.yml", DefaultTemplate)
	labelsPath := WriteFile(t, root, "labels.yml", DefaultLabels)
	validationsPath := WriteFile(t, root, "validations.yml", DefaultValidations)
	resourcesPath := WriteFile(t, root, "epic_resources.yml", DefaultResources)
	return templatePath, labelsPath, validationsPath, resourcesPath
}

// CreateWafTree writes the rule fixtures plus the given WAF documents (name →
// content) under a fresh temp root and returns the root path.
func CreateWafTree(t *testing.T, documents map[string]string) string {
	t.Helper()

	root := t.TempDir()
	CreateRuleFixtures(t, root)
	for name, content := range documents {
		WriteFile(t, root, filepath.Join("WAF", name), content)
	}
	return root
}
