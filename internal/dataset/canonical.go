package dataset

import (
	"math"
	"sort"

	"realty/internal/utils"
)

// ExtraColumns are optional numeric columns used by individual charts.
// They are looked up by name rather than through a role.
var ExtraColumns = []string{"luxury_score", "bathroom", "balcony", "floorNum"}

// Canonical is a frame with its columns resolved to roles. Numeric roles
// and extra columns are coerced once, invalid cells becoming NaN.
// A Canonical is not modified after construction.
type Canonical struct {
	frame   *Frame
	roles   map[Role]string
	numeric map[Role][]float64
	extras  map[string][]float64
	names   map[string]string
}

// NewCanonical resolves roles over a frame. A nil frame yields an empty view.
func NewCanonical(f *Frame) *Canonical {
	if f == nil {
		f = NewFrame(nil, nil)
	}
	c := &Canonical{
		frame:   f,
		roles:   ResolveAll(f.Columns),
		numeric: map[Role][]float64{},
		extras:  map[string][]float64{},
		names:   map[string]string{},
	}
	for _, role := range NumericRoles {
		if col, ok := c.roles[role]; ok {
			c.numeric[role] = f.Floats(col)
		}
	}
	for _, name := range ExtraColumns {
		col, ok := utils.MatchColumn(f.Columns, []string{name})
		if !ok || c.usedByRole(col) {
			continue
		}
		c.extras[name] = f.Floats(col)
		c.names[name] = col
	}
	return c
}

func (c *Canonical) usedByRole(col string) bool {
	for _, used := range c.roles {
		if used == col {
			return true
		}
	}
	return false
}

// Len returns the number of rows
func (c *Canonical) Len() int { return c.frame.Len() }

// Frame returns the underlying table
func (c *Canonical) Frame() *Frame { return c.frame }

// Column returns the source column resolved for a role
func (c *Canonical) Column(role Role) (string, bool) {
	col, ok := c.roles[role]
	return col, ok
}

// Has reports whether every role resolved
func (c *Canonical) Has(roles ...Role) bool {
	for _, r := range roles {
		if _, ok := c.roles[r]; !ok {
			return false
		}
	}
	return true
}

// Missing returns the unresolved roles among those given
func (c *Canonical) Missing(roles ...Role) []Role {
	var out []Role
	for _, r := range roles {
		if _, ok := c.roles[r]; !ok {
			out = append(out, r)
		}
	}
	return out
}

// Floats returns the coerced values of a numeric role, or nil.
// The slice is shared; callers must copy before modifying it.
func (c *Canonical) Floats(role Role) []float64 {
	return c.numeric[role]
}

// Strings returns the trimmed cells of a role's column, or nil
func (c *Canonical) Strings(role Role) []string {
	col, ok := c.roles[role]
	if !ok {
		return nil
	}
	return c.frame.Strings(col)
}

// Extra returns an optional numeric column by its canonical name
func (c *Canonical) Extra(name string) ([]float64, bool) {
	v, ok := c.extras[name]
	return v, ok
}

// ExtraColumn returns the source column name of an extra
func (c *Canonical) ExtraColumn(name string) string {
	return c.names[name]
}

// DistinctSectors returns the sorted non-blank sector values
func (c *Canonical) DistinctSectors() []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range c.Strings(RoleSector) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// IsMissing reports whether a coerced value is missing
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}
