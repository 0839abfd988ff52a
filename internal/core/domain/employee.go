package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderUnknown Gender = ""
)

// ParseGender normalises case and surrounding whitespace. Values other than
// male/female map to GenderUnknown.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale
	case "female":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// Column names of the employee table.
const (
	ColumnEmployeeID        = "EmployeeID"
	ColumnGender            = "Gender"
	ColumnAge               = "Age"
	ColumnTotalWorkingYears = "TotalWorkingYears"
	ColumnMonthlyIncome     = "MonthlyIncome"
	ColumnDepartment        = "Department"
)

// RequiredColumns must all be present in the data source.
var RequiredColumns = []string{
	ColumnGender,
	ColumnTotalWorkingYears,
	ColumnAge,
	ColumnMonthlyIncome,
	ColumnEmployeeID,
}

// CheckColumns returns ErrSchemaMismatch naming every required column absent
// from columns.
func CheckColumns(columns []string) error {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

type EmployeeRecord struct {
	EmployeeID        string  `json:"employee_id"`
	Gender            Gender  `json:"gender"`
	Age               int     `json:"age"`
	TotalWorkingYears int     `json:"total_working_years"`
	MonthlyIncome     float64 `json:"monthly_income"`
	Department        string  `json:"department,omitempty"`
}

// RecordFromRow builds a record from a column-name keyed row as returned by a
// database driver or a CSV reader.
func RecordFromRow(row map[string]any) (EmployeeRecord, error) {
	var rec EmployeeRecord

	id, ok := row[ColumnEmployeeID]
	if !ok || id == nil {
		return rec, fmt.Errorf("%w: empty %s", ErrMalformedInput, ColumnEmployeeID)
	}
	rec.EmployeeID = formatID(id)
	if rec.EmployeeID == "" {
		return rec, fmt.Errorf("%w: empty %s", ErrMalformedInput, ColumnEmployeeID)
	}

	rec.Gender = ParseGender(toString(row[ColumnGender]))

	age, err := toFloat(row[ColumnAge])
	if err != nil {
		return rec, fmt.Errorf("%w: employee %s %s: %v", ErrMalformedInput, rec.EmployeeID, ColumnAge, err)
	}
	years, err := toFloat(row[ColumnTotalWorkingYears])
	if err != nil {
		return rec, fmt.Errorf("%w: employee %s %s: %v", ErrMalformedInput, rec.EmployeeID, ColumnTotalWorkingYears, err)
	}
	income, err := toFloat(row[ColumnMonthlyIncome])
	if err != nil {
		return rec, fmt.Errorf("%w: employee %s %s: %v", ErrMalformedInput, rec.EmployeeID, ColumnMonthlyIncome, err)
	}

	rec.Age = int(math.Round(age))
	rec.TotalWorkingYears = int(math.Round(years))
	rec.MonthlyIncome = income
	rec.Department = strings.TrimSpace(toString(row[ColumnDepartment]))
	return rec, nil
}

// Fields returns the record as CSV columns in EmployeeCSVHeader order.
func (r EmployeeRecord) Fields() []string {
	return []string{
		r.EmployeeID,
		string(r.Gender),
		strconv.Itoa(r.Age),
		strconv.Itoa(r.TotalWorkingYears),
		strconv.FormatFloat(r.MonthlyIncome, 'f', -1, 64),
		r.Department,
	}
}

// EmployeeCSVHeader is the column order used for every CSV dump.
var EmployeeCSVHeader = []string{
	ColumnEmployeeID,
	ColumnGender,
	ColumnAge,
	ColumnTotalWorkingYears,
	ColumnMonthlyIncome,
	ColumnDepartment,
}

// SplitByGender partitions records, preserving order. Records of unknown
// gender are dropped.
func SplitByGender(records []EmployeeRecord) (male, female []EmployeeRecord) {
	male = []EmployeeRecord{}
	female = []EmployeeRecord{}
	for _, r := range records {
		switch r.Gender {
		case GenderMale:
			male = append(male, r)
		case GenderFemale:
			female = append(female, r)
		}
	}
	return male, female
}

// IDs returns the employee IDs of records in order.
func IDs(records []EmployeeRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.EmployeeID)
	}
	return ids
}

func formatID(v any) string {
	switch t := v.(type) {
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return formatID(float64(t))
	default:
		return strings.TrimSpace(toString(v))
	}
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, fmt.Errorf("null value")
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint8:
		return float64(t), nil
	case uint16:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
