package domain

// DatasetConfig drives one ETL run.
type DatasetConfig struct {
	FileName   string   `yaml:"file_name"`
	SheetName  string   `yaml:"sheet_name"`
	Attributes []string `yaml:"attributes"`
	TableName  string   `yaml:"table_name"`
}

// Table is raw tabular data with string cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

type ColumnType string

const (
	ColumnTypeInteger ColumnType = "BIGINT"
	ColumnTypeFloat   ColumnType = "DOUBLE PRECISION"
	ColumnTypeText    ColumnType = "TEXT"
)
