package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salary-bias-service/internal/core/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, EnsureSchema(context.Background(), db))
	return db
}

func loadEmployees(t *testing.T, db *sql.DB) {
	t.Helper()
	table := &domain.Table{
		Columns: []string{"EmployeeID", "Gender", "Age", "TotalWorkingYears", "MonthlyIncome", "Department"},
		Rows: [][]string{
			{"1", "Male", "34", "8", "5130.5", "Sales"},
			{"2", "Female", "29", "4", "4100", "R&D"},
			{"3", "female", "51", "25", "12000", "HR"},
		},
	}
	types := []domain.ColumnType{
		domain.ColumnTypeInteger, domain.ColumnTypeText, domain.ColumnTypeInteger,
		domain.ColumnTypeInteger, domain.ColumnTypeFloat, domain.ColumnTypeText,
	}
	require.NoError(t, NewTableLoader(db).ReplaceTable(context.Background(), "employees", table, types))
}

func TestEmployeeRepository_List(t *testing.T) {
	db := openTestDB(t)
	loadEmployees(t, db)

	records, err := NewEmployeeRepository(db, "employees").List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, domain.EmployeeRecord{
		EmployeeID: "1", Gender: domain.GenderMale, Age: 34, TotalWorkingYears: 8, MonthlyIncome: 5130.5, Department: "Sales",
	}, records[0])
	assert.Equal(t, domain.GenderFemale, records[2].Gender)
}

func TestEmployeeRepository_SchemaMismatch(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`CREATE TABLE partial (EmployeeID INTEGER, Gender TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO partial VALUES (1, 'Male')`)
	require.NoError(t, err)

	_, err = NewEmployeeRepository(db, "partial").List(context.Background())
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
}

func TestTableLoader_ReplacesTable(t *testing.T) {
	db := openTestDB(t)
	loadEmployees(t, db)

	loader := NewTableLoader(db)
	table := &domain.Table{Columns: []string{"EmployeeID"}, Rows: [][]string{{"9"}}}
	require.NoError(t, loader.ReplaceTable(context.Background(), "employees", table, []domain.ColumnType{domain.ColumnTypeInteger}))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM employees`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestTableLoader_BadRowRollsBack(t *testing.T) {
	db := openTestDB(t)
	loadEmployees(t, db)

	table := &domain.Table{Columns: []string{"EmployeeID"}, Rows: [][]string{{"1"}, {"x"}}}
	err := NewTableLoader(db).ReplaceTable(context.Background(), "employees", table, []domain.ColumnType{domain.ColumnTypeInteger})
	require.Error(t, err)

	// the previous table survives
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM employees`).Scan(&n))
	assert.Equal(t, 3, n)
}

func TestTableLoader_TypeCountMismatch(t *testing.T) {
	db := openTestDB(t)
	table := &domain.Table{Columns: []string{"a", "b"}}
	err := NewTableLoader(db).ReplaceTable(context.Background(), "t", table, []domain.ColumnType{domain.ColumnTypeText})
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestPredictionRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewPredictionRepository(db)
	ctx := context.Background()

	first := &domain.ModelPrediction{ModelType: "Male Model", TestDataset: "Male Data", MeanAbsoluteError: 1234.5, Phase: domain.PhaseBeforeSwap}
	second := &domain.ModelPrediction{ModelType: "Male Model", TestDataset: "Female Data", MeanAbsoluteError: 1500, Phase: domain.PhaseAfterSwap}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	preds, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, "Female Data", preds[1].TestDataset)
	assert.Equal(t, domain.PhaseAfterSwap, preds[1].Phase)
	assert.WithinDuration(t, first.CreatedAt, preds[0].CreatedAt, time.Millisecond)
}

func TestSurveyRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewSurveyRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.SurveySession{
		ID: uuid.New(), CreatedAt: now, UpdatedAt: now,
		Participant: "alice", SampleSize: 5, SampleCount: 2,
		Responses: map[string]string{},
	}
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "alice", got.Participant)
	assert.True(t, now.Equal(got.CreatedAt))
	assert.Empty(t, got.Responses)

	require.NoError(t, repo.UpdateResponses(ctx, s.ID, map[string]string{"visual_1.png": "Red"}))
	got, err = repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"visual_1.png": "Red"}, got.Responses)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, repo.UpdateResponses(ctx, uuid.New(), map[string]string{}), domain.ErrSessionNotFound)
}
