package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

type tableLoader struct {
	db *sql.DB
}

func NewTableLoader(db *sql.DB) ports.TableLoader {
	return &tableLoader{db: db}
}

// ReplaceTable drops and recreates the table inside one transaction.
func (l *tableLoader) ReplaceTable(ctx context.Context, name string, table *domain.Table, types []domain.ColumnType) (err error) {
	if len(types) != len(table.Columns) {
		return fmt.Errorf("%w: %d column types for %d columns", domain.ErrMalformedInput, len(types), len(table.Columns))
	}

	defs := make([]string, len(table.Columns))
	cols := make([]string, len(table.Columns))
	marks := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		defs[i] = fmt.Sprintf("%s %s", quoteIdent(c), sqliteType(types[i]))
		cols[i] = quoteIdent(c)
		marks[i] = "?"
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(name))); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(name), strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range table.Rows {
		values, convErr := typedRow(row, types)
		if convErr != nil {
			err = fmt.Errorf("row %d: %w", i+1, convErr)
			return err
		}
		if _, err = stmt.ExecContext(ctx, values...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func sqliteType(t domain.ColumnType) string {
	switch t {
	case domain.ColumnTypeInteger:
		return "INTEGER"
	case domain.ColumnTypeFloat:
		return "REAL"
	default:
		return "TEXT"
	}
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
