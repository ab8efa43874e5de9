package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabberley/epic-waf-actions/internal/testutil"
)

func TestExportCommand_EndToEnd(t *testing.T) {
	root := testutil.CreateWafTree(t, map[string]string{
		"one.yml":      testutil.ValidDocument,
		"inactive.yml": "name: off\nactive: false\n",
	})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	rootCmd.SetArgs([]string{"export", "--root", root, "--no-progress"})
	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Workbook created:")

	entries, err := os.ReadDir(filepath.Join(root, "excel"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "WAF-version-")
	assert.Contains(t, entries[0].Name(), ".xlsx")
}

func TestExportCommand_NoFiles(t *testing.T) {
	root := testutil.CreateWafTree(t, nil)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	rootCmd.SetArgs([]string{"export", "--root", root, "--no-progress"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no YAML files found")
}
