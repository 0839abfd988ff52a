package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

type tableLoader struct {
	pool *pgxpool.Pool
}

func NewTableLoader(pool *pgxpool.Pool) ports.TableLoader {
	return &tableLoader{pool: pool}
}

// ReplaceTable drops and recreates the table, then bulk copies the rows.
func (l *tableLoader) ReplaceTable(ctx context.Context, name string, table *domain.Table, types []domain.ColumnType) error {
	if len(types) != len(table.Columns) {
		return fmt.Errorf("%w: %d column types for %d columns", domain.ErrMalformedInput, len(types), len(table.Columns))
	}

	ident := pgx.Identifier(strings.Split(name, "."))
	defs := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		defs[i] = fmt.Sprintf("%s %s", pgx.Identifier{c}.Sanitize(), types[i])
	}

	rows := make([][]any, len(table.Rows))
	for i, row := range table.Rows {
		values, err := typedRow(row, types)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		rows[i] = values
	}

	return pgx.BeginFunc(ctx, l.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", ident.Sanitize())); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
		if _, err := tx.Exec(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", ident.Sanitize(), strings.Join(defs, ", "))); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
		if _, err := tx.CopyFrom(ctx, ident, table.Columns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy rows: %w", err)
		}
		return nil
	})
}

func typedRow(row []string, types []domain.ColumnType) ([]any, error) {
	out := make([]any, len(row))
	for i, v := range row {
		switch types[i] {
		case domain.ColumnTypeInteger:
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, err
			}
			out[i] = n
		case domain.ColumnTypeFloat:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, err
			}
			out[i] = f
		default:
			out[i] = v
		}
	}
	return out, nil
}
