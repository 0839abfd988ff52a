package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	rt := newRuntime()
	defer rt.close()

	root := newRootCmd(rt)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// setupWorkspace points the CLI at a fresh SQLite database and artifact root
// and returns the path of a dataset config for 40 employees.
func setupWorkspace(t *testing.T) (dir, datasetConfig string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_SQLITE_PATH", filepath.Join(dir, "salary.db"))
	t.Setenv("DATABASE_EMPLOYEE_TABLE", "employees")
	t.Setenv("ARTIFACTS_ROOT", filepath.Join(dir, "static"))
	t.Setenv("SAMPLING_SEED", "11")
	t.Setenv("LOGGER_LEVEL", "error")

	var b strings.Builder
	b.WriteString("EmployeeID,Gender,Age,TotalWorkingYears,MonthlyIncome\n")
	for i := 1; i <= 40; i++ {
		gender := "Male"
		if i%2 == 0 {
			gender = "female"
		}
		fmt.Fprintf(&b, "%d,%s,%d,%d,%d\n", i, gender, 24+i%18, i%12, 2500+120*i)
	}
	csvPath := filepath.Join(dir, "salaries.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(b.String()), 0o644))

	datasetConfig = filepath.Join(dir, "dataset.yaml")
	yaml := fmt.Sprintf(`dataset:
  file_name: %s
  attributes: [EmployeeID, Gender, Age, TotalWorkingYears, MonthlyIncome]
  table_name: employees
`, csvPath)
	require.NoError(t, os.WriteFile(datasetConfig, []byte(yaml), 0o644))
	return dir, datasetConfig
}

func TestGenerateRequiresSize(t *testing.T) {
	_, _, err := executeCLI(t, "generate", "--count", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "size" not set`)
}

func TestUnsupportedDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "oracle")
	_, _, err := executeCLI(t, "analyze", "ttest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestETLThenAnalysis(t *testing.T) {
	dir, datasetConfig := setupWorkspace(t)

	stdout, _, err := executeCLI(t, "etl", "run", "-c", datasetConfig)
	require.NoError(t, err)
	assert.Contains(t, stdout, "loaded 40 rows into employees")

	stdout, _, err = executeCLI(t, "cluster", "export")
	require.NoError(t, err)
	assert.Contains(t, stdout, "CLUSTER")
	assert.Contains(t, stdout, "High_High")

	stdout, _, err = executeCLI(t, "analyze", "ttest", "--json")
	require.NoError(t, err)
	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.NotEmpty(t, results)
	assert.Equal(t, "Full_Dataset", results[0]["cluster"])
	assert.FileExists(t, filepath.Join(dir, "static", "cluster_ttest_results.csv"))

	stdout, _, err = executeCLI(t, "analyze", "regression")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Combined Model")
	assert.Contains(t, stdout, "After Swap")
}

func TestETLMissingConfig(t *testing.T) {
	dir, _ := setupWorkspace(t)

	_, _, err := executeCLI(t, "etl", "run", "-c", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read dataset config")
}
