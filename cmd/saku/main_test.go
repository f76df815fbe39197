package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saku/internal/candidate/models"
	"saku/internal/candidate/service"
	"saku/internal/coverage"
	"saku/pkg/testutil"
)

const registrations = `[
  {"student_id": "S-1", "full_name": "Amina Otieno", "department": "Engineering", "year_of_study": 3, "gender": "Female"},
  {"student_id": "S-2", "full_name": "Brian Kamau", "department": "Engineering", "year_of_study": 1, "gender": "Male"}
]`

const departmentsCSV = `department_code,department_name,course_name
engineering,Engineering,BSc Civil Engineering
law,Law,Bachelor of Laws
`

const constitutionText = `Preamble of the association.
Article III Representation
Each department shall elect a minimum of 4 delegates.
Article IV Eligibility
A candidate must be in year of study 2 or above.
`

type result struct {
	code   int
	stdout string
	stderr string
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SAKU_ROOT", "SAKU_RULES_SOURCE", "SAKU_RULES_PATH", "DATABASE_URL", "REDIS_URL", "LOG_LEVEL", "LOG_FORMAT", "SAKU_TRACE_EXPORTER",
	} {
		t.Setenv(key, "")
	}
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestVetAndCoverage(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	testutil.WriteFile(t, root, "rules/rules.yaml", testutil.SampleRules)
	candidates := testutil.WriteFile(t, root, "candidates.json", registrations)
	depts := testutil.WriteFile(t, root, "data/departments.csv", departmentsCSV)
	out := filepath.Join(root, "vetted.json")
	metricsOut := filepath.Join(root, "saku.prom")

	res := runCLI(t, "vet", "--root", root, "--candidates", candidates, "--out", out)
	require.Equal(t, exitOK, res.code, res.stderr)

	var summary service.RunSummary
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &summary))
	assert.Len(t, summary.Passed, 1)
	assert.Len(t, summary.Failed, 1)
	assert.Empty(t, summary.Errored)

	var vetted []*models.Record
	require.NoError(t, json.Unmarshal([]byte(testutil.ReadFile(t, out)), &vetted))
	require.Len(t, vetted, 2)
	assert.Equal(t, models.VettingPassed, vetted[0].VettingStatus)
	assert.Equal(t, models.VettingFailed, vetted[1].VettingStatus)
	require.NotNil(t, vetted[1].Eligibility)
	assert.Equal(t, "Year >= 2", vetted[1].Eligibility.Checks[0].Detail)

	res = runCLI(t, "coverage", "--root", root, "--candidates", out, "--departments", depts, "--metrics-out", metricsOut)
	require.Equal(t, exitOK, res.code, res.stderr)

	var report coverage.Report
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
	assert.Equal(t, 3, report.Targets.MinPerDepartment)
	assert.Equal(t, 0.4, report.Targets.FemaleMin)
	require.Len(t, report.Departments, 2)
	assert.Equal(t, 1, report.Departments[0].Qualified)
	assert.Equal(t, 2, report.Departments[0].GapToMin)
	assert.Equal(t, 3, report.Departments[1].GapToMin)
	assert.Contains(t, testutil.ReadFile(t, metricsOut), "saku_coverage_score")
}

func TestRegisterCreatesStoreFile(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	testutil.WriteFile(t, root, "rules/rules.yaml", testutil.SampleRules)
	input := testutil.WriteFile(t, root, "registrations.json", registrations)
	storePath := filepath.Join(root, "store.json")

	res := runCLI(t, "register", input, "--root", root, "--candidates", storePath)
	require.Equal(t, exitOK, res.code, res.stderr)

	var records []*models.Record
	require.NoError(t, json.Unmarshal([]byte(testutil.ReadFile(t, storePath)), &records))
	require.Len(t, records, 2)
	assert.True(t, records[0].IsQualified)
	assert.Equal(t, models.UserTypeDelegate, records[0].UserType)

	res = runCLI(t, "register", input, "--root", root, "--candidates", storePath)
	assert.Equal(t, exitFailure, res.code)
	assert.Contains(t, res.stderr, "already registered")

	records = nil
	require.NoError(t, json.Unmarshal([]byte(testutil.ReadFile(t, storePath)), &records))
	assert.Len(t, records, 2)
}

func TestRegisterBatchFailureWritesNothing(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	testutil.WriteFile(t, root, "rules/rules.yaml", testutil.SampleRules)
	input := testutil.WriteFile(t, root, "registrations.json", `[
  {"student_id": "S-9", "full_name": "Amina Otieno", "department": "Engineering", "year_of_study": 3, "gender": "Female"},
  {"student_id": "S-9", "full_name": "Amina Otieno", "department": "Engineering", "year_of_study": 3, "gender": "Female"}
]`)
	storePath := filepath.Join(root, "store.json")

	res := runCLI(t, "register", input, "--root", root, "--candidates", storePath)
	assert.Equal(t, exitFailure, res.code)
	assert.Contains(t, res.stderr, "register S-9")
	assert.NoFileExists(t, storePath)
}

func TestVetWritesBackToCandidatesFile(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	testutil.WriteFile(t, root, "rules/rules.yaml", testutil.SampleRules)
	candidates := testutil.WriteFile(t, root, "candidates.json", registrations)

	res := runCLI(t, "vet", "--root", root, "--candidates", candidates)
	require.Equal(t, exitOK, res.code, res.stderr)

	var vetted []*models.Record
	require.NoError(t, json.Unmarshal([]byte(testutil.ReadFile(t, candidates)), &vetted))
	require.Len(t, vetted, 2)
	assert.Equal(t, models.VettingPassed, vetted[0].VettingStatus)

	res = runCLI(t, "vet", "--root", root, "--candidates", candidates)
	require.Equal(t, exitOK, res.code, res.stderr)
	var summary service.RunSummary
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &summary))
	assert.Zero(t, summary.Total())
}

func TestIngestConstitutionThenRules(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	doc := testutil.WriteFile(t, root, "uploads/constitution.txt", constitutionText)

	res := runCLI(t, "ingest", "constitution", doc, "--root", root)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.FileExists(t, filepath.Join(root, "reports", "constitution_extract.md"))

	res = runCLI(t, "rules", "--root", root)
	require.Equal(t, exitOK, res.code, res.stderr)

	var rs map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &rs))
	minimum := rs["min_per_department"].(map[string]any)
	assert.Equal(t, float64(4), minimum["value"])
	assert.Equal(t, "Article III Representation", minimum["citation"])
	eligibility := rs["eligibility"].(map[string]any)
	assert.Contains(t, eligibility, "year_min")
}

func TestIngestDiscoversUploads(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	testutil.WriteFile(t, root, "uploads/constitution.txt", constitutionText)
	testutil.WriteFile(t, root, "uploads/departments.txt", "SCHOOL OF ENGINEERING\n- BSc Civil Engineering\n")

	res := runCLI(t, "ingest", "--root", root)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.FileExists(t, filepath.Join(root, "data", "departments.csv"))
	assert.FileExists(t, filepath.Join(root, "rules", "rules.yaml"))
}

func TestExitCodes(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()

	t.Run("unknown command", func(t *testing.T) {
		res := runCLI(t, "bogus", "--root", root)
		assert.Equal(t, exitUsage, res.code)
	})

	t.Run("unknown flag", func(t *testing.T) {
		res := runCLI(t, "vet", "--nope")
		assert.Equal(t, exitUsage, res.code)
	})

	t.Run("no candidate store", func(t *testing.T) {
		res := runCLI(t, "vet", "--root", root)
		assert.Equal(t, exitUsage, res.code)
		assert.Contains(t, res.stderr, "--candidates is required")
	})

	t.Run("unknown rules source", func(t *testing.T) {
		res := runCLI(t, "rules", "--root", root, "--rules-source", "s3")
		assert.Equal(t, exitUsage, res.code)
	})

	t.Run("malformed rule document", func(t *testing.T) {
		bad := testutil.WriteFile(t, root, "bad.yaml", "min_per_department: [unclosed\n")
		res := runCLI(t, "rules", "--root", root, "--rules", bad)
		assert.Equal(t, exitUsage, res.code)
	})

	t.Run("rule evaluation error", func(t *testing.T) {
		rulesPath := testutil.WriteFile(t, root, "eval.yaml", "eligibility:\n  year_min:\n    value: two\n")
		candidates := testutil.WriteFile(t, root, "c.json", registrations)
		res := runCLI(t, "vet", "--root", root, "--rules", rulesPath, "--candidates", candidates)
		assert.Equal(t, exitFailure, res.code)

		var summary service.RunSummary
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &summary))
		assert.Len(t, summary.Errored, 2)
	})
}
