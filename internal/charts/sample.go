package charts

import (
	"math"
	"math/rand"
	"sort"

	"realty/internal/dataset"
)

// rowsWhere returns the indices of the rows where every series is finite
func rowsWhere(n int, series ...[]float64) []int {
	rows := make([]int, 0, n)
	for i := 0; i < n; i++ {
		ok := true
		for _, s := range series {
			if s == nil || !finite(s[i]) {
				ok = false
				break
			}
		}
		if ok {
			rows = append(rows, i)
		}
	}
	return rows
}

// subsample keeps exactly size rows when there are more, chosen with a
// seeded generator so the same input always yields the same sample.
// The kept rows stay in their original order.
func subsample(rows []int, size int, seed int64) []int {
	if size <= 0 || len(rows) <= size {
		return rows
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(rows))[:size]
	sort.Ints(perm)
	out := make([]int, size)
	for i, p := range perm {
		out[i] = rows[p]
	}
	return out
}

// clip returns a copy of values capped at their q-quantile. The input is
// never modified.
func clip(values []float64, q float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	if q <= 0 || q >= 1 {
		return out
	}
	limit := dataset.Quantile(values, q)
	if math.IsNaN(limit) {
		return out
	}
	for i, v := range out {
		if v > limit {
			out[i] = limit
		}
	}
	return out
}

// pick gathers the values at rows
func pick(values []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = values[r]
	}
	return out
}

func pickStrings(values []string, rows []int) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = values[r]
	}
	return out
}

// groupRows splits rows by a category value, returning the sorted group
// names. Blank categories are grouped under "Unknown".
func groupRows(categories []string, rows []int) ([]string, map[string][]int) {
	groups := map[string][]int{}
	for _, r := range rows {
		name := categories[r]
		if name == "" {
			name = "Unknown"
		}
		groups[name] = append(groups[name], r)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, groups
}
