package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

// ETLService loads a CSV or Excel dataset into a database table.
type ETLService struct {
	source ports.DatasetSource
	loader ports.TableLoader
}

func NewETLService(source ports.DatasetSource, loader ports.TableLoader) *ETLService {
	return &ETLService{source: source, loader: loader}
}

func (s *ETLService) Run(ctx context.Context, cfg domain.DatasetConfig) (*domain.Table, error) {
	if cfg.FileName == "" || cfg.TableName == "" || len(cfg.Attributes) == 0 {
		return nil, fmt.Errorf("%w: file_name, table_name and attributes are required", domain.ErrInvalidDatasetConfig)
	}

	log.WithField("file", cfg.FileName).Info("starting ETL pipeline")

	raw, err := s.source.Extract(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	log.WithFields(log.Fields{"file": cfg.FileName, "rows": len(raw.Rows)}).Info("extracted data")

	table, err := Transform(raw, cfg.Attributes)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	log.WithFields(log.Fields{"rows": len(table.Rows), "columns": len(table.Columns)}).Info("transformed data")

	if err := s.loader.ReplaceTable(ctx, cfg.TableName, table, InferColumnTypes(table)); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	log.WithField("table", cfg.TableName).Info("ETL pipeline completed")
	return table, nil
}

// Transform keeps the given attributes in order, trims every cell, drops rows
// with an empty cell and drops repeated rows keeping the first.
func Transform(raw *domain.Table, attributes []string) (*domain.Table, error) {
	index := make(map[string]int, len(raw.Columns))
	for i, c := range raw.Columns {
		index[strings.TrimSpace(c)] = i
	}

	cols := make([]int, len(attributes))
	for i, a := range attributes {
		pos, ok := index[a]
		if !ok {
			return nil, fmt.Errorf("%w: attribute %q not in dataset", domain.ErrInvalidDatasetConfig, a)
		}
		cols[i] = pos
	}

	out := &domain.Table{Columns: append([]string(nil), attributes...), Rows: [][]string{}}
	seen := make(map[string]bool)

rows:
	for _, row := range raw.Rows {
		selected := make([]string, len(cols))
		for i, pos := range cols {
			if pos >= len(row) {
				continue rows
			}
			v := strings.TrimSpace(row[pos])
			if v == "" {
				continue rows
			}
			selected[i] = v
		}
		key := strings.Join(selected, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Rows = append(out.Rows, selected)
	}
	return out, nil
}

// InferColumnTypes picks the narrowest of integer, float and text that every
// value in a column parses as.
func InferColumnTypes(t *domain.Table) []domain.ColumnType {
	types := make([]domain.ColumnType, len(t.Columns))
	for c := range t.Columns {
		isInt, isFloat := len(t.Rows) > 0, len(t.Rows) > 0
		for _, row := range t.Rows {
			if isInt {
				if _, err := strconv.ParseInt(row[c], 10, 64); err != nil {
					isInt = false
				}
			}
			if _, err := strconv.ParseFloat(row[c], 64); err != nil {
				isFloat = false
				break
			}
		}
		switch {
		case isInt:
			types[c] = domain.ColumnTypeInteger
		case isFloat:
			types[c] = domain.ColumnTypeFloat
		default:
			types[c] = domain.ColumnTypeText
		}
	}
	return types
}
