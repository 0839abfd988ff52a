package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

type employeeRepo struct {
	pool  *pgxpool.Pool
	table pgx.Identifier
}

// NewEmployeeRepository reads every row of table. A schema-qualified name
// such as "hr.salaries" is accepted.
func NewEmployeeRepository(pool *pgxpool.Pool, table string) ports.EmployeeRepository {
	return &employeeRepo{pool: pool, table: pgx.Identifier(strings.Split(table, "."))}
}

func (r *employeeRepo) List(ctx context.Context) ([]domain.EmployeeRecord, error) {
	query := fmt.Sprintf("SELECT * FROM %s", r.table.Sanitize())
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}
	if err := domain.CheckColumns(columns); err != nil {
		return nil, err
	}

	records := []domain.EmployeeRecord{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan employee row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
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

// normalizeValue turns NUMERIC columns into float64.
func normalizeValue(v any) any {
	n, ok := v.(pgtype.Numeric)
	if !ok {
		return v
	}
	if !n.Valid {
		return nil
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return nil
	}
	return f.Float64
}
