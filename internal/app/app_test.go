package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salary-bias-service/internal/config"
	"salary-bias-service/internal/core/domain"
)

func writeSalaryCSV(t *testing.T, path string, n int) {
	t.Helper()
	var b strings.Builder
	b.WriteString("EmployeeID,Gender,Age,TotalWorkingYears,MonthlyIncome,Department,Unused\n")
	for i := 1; i <= n; i++ {
		gender := "Male"
		income := 3000 + 150*i
		if i%2 == 0 {
			gender = "Female"
			income -= 400
		}
		fmt.Fprintf(&b, "%d,%s,%d,%d,%d,Sales,x\n", i, gender, 25+i%20, i%15, income)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
}

func newSQLiteApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:        DriverSQLite,
			SQLitePath:    filepath.Join(dir, "salary.db"),
			EmployeeTable: "employees",
		},
		Artifacts: config.ArtifactsConfig{Root: filepath.Join(dir, "static")},
		Sampling:  config.SamplingConfig{Seed: 7},
	}
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(context.Background(), &config.Config{Database: config.DatabaseConfig{Driver: "oracle"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestApp_SQLitePipeline(t *testing.T) {
	ctx := context.Background()
	a := newSQLiteApp(t)
	require.NoError(t, a.Ping(ctx))

	csvPath := filepath.Join(t.TempDir(), "salaries.csv")
	writeSalaryCSV(t, csvPath, 60)

	table, err := a.ETL.Run(ctx, domain.DatasetConfig{
		FileName:   csvPath,
		Attributes: []string{"EmployeeID", "Gender", "Age", "TotalWorkingYears", "MonthlyIncome", "Department"},
		TableName:  "employees",
	})
	require.NoError(t, err)
	assert.Len(t, table.Rows, 60)

	assignment, err := a.Clusters.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60, assignment.Size())

	results, err := a.Analysis.Run(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, domain.ScopeFullDataset, results[0].Scope)
	assert.Equal(t, 30, results[0].NMale)

	preds, err := a.Regression.Evaluate(ctx)
	require.NoError(t, err)
	assert.Len(t, preds, 7)
	stored, err := a.Regression.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 7)

	entries, err := a.Generation.Run(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.FileExists(t, filepath.Join(a.Store.Root(), entries[0].VisualPath))

	session, err := a.Survey.Start(ctx, "alice", 3, 2)
	require.NoError(t, err)
	updated, err := a.Survey.SubmitResponses(ctx, session.ID, map[string]string{entries[1].VisualPath: "Blue"})
	require.NoError(t, err)
	assert.Equal(t, "Blue", updated.Responses[entries[1].VisualPath])
}

func TestRenderOptions(t *testing.T) {
	opts := RenderOptions(config.RenderConfig{
		ScaleFactor: 2,
		Jitter:      0.5,
		Layout:      "overlay",
		DPI:         72,
	})
	def := domain.DefaultRenderOptions()

	assert.Equal(t, 2.0, opts.ScaleFactor)
	assert.Equal(t, def.MinSize, opts.MinSize)
	assert.Equal(t, 0.5, opts.Jitter)
	assert.Equal(t, domain.LayoutOverlay, opts.Layout)
	assert.Equal(t, def.WidthInch, opts.WidthInch)
	assert.Equal(t, 72, opts.DPI)

	assert.Equal(t, domain.LayoutSideBySide, RenderOptions(config.RenderConfig{Layout: "diagonal"}).Layout)
}
