package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"salary-bias-service/internal/core/domain"
)

// Source extracts CSV and Excel files.
type Source struct{}

func NewSource() *Source {
	return &Source{}
}

func (s *Source) Extract(_ context.Context, cfg domain.DatasetConfig) (*domain.Table, error) {
	switch strings.ToLower(filepath.Ext(cfg.FileName)) {
	case ".csv":
		return readCSV(cfg.FileName)
	case ".xlsx", ".xls":
		return readExcel(cfg.FileName, cfg.SheetName)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, cfg.FileName)
	}
}

func readCSV(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return toTable(all)
}

func readExcel(path, sheet string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrInvalidDatasetConfig)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return toTable(rows)
}

func toTable(rows [][]string) (*domain.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: dataset has no header row", domain.ErrInvalidDatasetConfig)
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return &domain.Table{Columns: header, Rows: rows[1:]}, nil
}
