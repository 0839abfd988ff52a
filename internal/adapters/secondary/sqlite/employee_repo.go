package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

// Open opens a SQLite database file. Callers own the handle.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

type employeeRepo struct {
	db    *sql.DB
	table string
}

func NewEmployeeRepository(db *sql.DB, table string) ports.EmployeeRepository {
	return &employeeRepo{db: db, table: table}
}

func (r *employeeRepo) List(ctx context.Context) ([]domain.EmployeeRecord, error) {
	query := fmt.Sprintf(`SELECT * FROM %s`, quoteIdent(r.table))
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read employee columns: %w", err)
	}
	if err := domain.CheckColumns(columns); err != nil {
		return nil, err
	}

	records := []domain.EmployeeRecord{}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan employee row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		rec, err := domain.RecordFromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employee rows: %w", err)
	}
	return records, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
