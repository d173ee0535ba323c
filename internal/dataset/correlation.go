package dataset

import (
	"fmt"
	"math"
)

// CorrMatrix is a symmetric Pearson correlation matrix
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// Correlate computes pairwise-complete Pearson correlations: each pair uses
// only the rows where both values are present. Pairs with fewer than two
// rows or zero variance are NaN.
func Correlate(names []string, columns [][]float64) *CorrMatrix {
	n := len(names)
	m := &CorrMatrix{Columns: append([]string(nil), names...), Values: make([][]float64, n)}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			r := pearson(columns[i], columns[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

// pearson is mean-centred over the rows where both values are present
func pearson(xs, ys []float64) float64 {
	var px, py []float64
	for k := 0; k < len(xs) && k < len(ys); k++ {
		x, y := xs[k], ys[k]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		px = append(px, x)
		py = append(py, y)
	}
	n := float64(len(px))
	if n < 2 {
		return math.NaN()
	}

	var meanX, meanY float64
	for k := range px {
		meanX += px[k]
		meanY += py[k]
	}
	meanX /= n
	meanY /= n

	var sxx, syy, sxy float64
	for k := range px {
		dx, dy := px[k]-meanX, py[k]-meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	denom := math.Sqrt(sxx * syy)
	if denom == 0 || math.IsNaN(denom) {
		return math.NaN()
	}
	r := sxy / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// MatrixFromFrame reads a precomputed correlation matrix. The first column
// holds row labels when its header is blank or is not one of the other
// headers. The result must be square.
func MatrixFromFrame(f *Frame) (*CorrMatrix, error) {
	if f == nil || len(f.Columns) == 0 {
		return nil, fmt.Errorf("correlation table is empty")
	}
	columns := f.Columns
	labelled := false
	if first := columns[0]; first == "" || !contains(columns[1:], first) {
		labelled = len(columns) > 1 && !numericColumn(f, 0)
	}
	if labelled {
		columns = columns[1:]
	}
	n := len(columns)
	if n == 0 || f.Len() != n {
		return nil, fmt.Errorf("correlation table is not square: %d columns, %d rows", n, f.Len())
	}

	m := &CorrMatrix{Columns: append([]string(nil), columns...), Values: make([][]float64, n)}
	for i, row := range f.Rows {
		cells := row
		if labelled {
			if row[0] != columns[i] {
				return nil, fmt.Errorf("correlation row %d is labelled %q, want %q", i, row[0], columns[i])
			}
			cells = row[1:]
		}
		m.Values[i] = make([]float64, n)
		for j, cell := range cells {
			m.Values[i][j] = ParseFloat(cell)
		}
	}
	return m, nil
}

func numericColumn(f *Frame, idx int) bool {
	for _, row := range f.Rows {
		if row[idx] == "" {
			continue
		}
		if math.IsNaN(ParseFloat(row[idx])) {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
