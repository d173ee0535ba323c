package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Frame is an in-memory table of string cells with a header row.
// Every row has exactly len(Columns) cells.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// NewFrame builds a frame, padding short rows and truncating long ones
func NewFrame(columns []string, rows [][]string) *Frame {
	ncol := len(columns)
	out := make([][]string, 0, len(rows))
	for _, rec := range rows {
		row := make([]string, ncol)
		copy(row, rec)
		out = append(out, row)
	}
	return &Frame{Columns: append([]string(nil), columns...), Rows: out}
}

// Len returns the number of rows
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// Index returns the position of an exactly named column, or -1
func (f *Frame) Index(column string) int {
	if f == nil {
		return -1
	}
	for i, c := range f.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Strings returns a copy of a column's trimmed cells, or nil when absent
func (f *Frame) Strings(column string) []string {
	idx := f.Index(column)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = strings.TrimSpace(row[idx])
	}
	return out
}

// Floats coerces a column to numbers. Blank or unparsable cells become NaN.
// Returns nil when the column is absent.
func (f *Frame) Floats(column string) []float64 {
	idx := f.Index(column)
	if idx < 0 {
		return nil
	}
	out := make([]float64, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = ParseFloat(row[idx])
	}
	return out
}

// ParseFloat converts a cell to a number, returning NaN for blank or
// non-numeric text. Thousands separators are tolerated.
func ParseFloat(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return math.NaN()
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	if strings.Contains(s, ",") {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
			return v
		}
	}
	return math.NaN()
}
