// Package testutil provides helpers shared by package and command tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SampleRules is a rule document with every rule set.
const SampleRules = `min_per_department:
  value: 3
  scope: department
  citation: Article III
  editable: true
gender_balance:
  metric: ratio
  target:
    female_min: 0.4
  tolerance: 0.05
  scope: department
  citation: Article V
  editable: true
eligibility:
  year_min:
    value: 2
    citation: Article IV
`

// WriteFile writes content to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ReadFile returns the content of path.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
