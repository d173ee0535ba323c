package charts

import (
	"fmt"
	"math"
)

// Figure is a Plotly figure specification: a list of traces and a layout.
// Every number in it is finite so that it always encodes as JSON.
type Figure struct {
	Data   []map[string]any `json:"data"`
	Layout map[string]any   `json:"layout"`
}

// Unavailable is returned by a chart builder that cannot draw its chart
// from the data it was given
type Unavailable struct {
	Reason string
}

func (u *Unavailable) Error() string {
	return u.Reason
}

func unavailable(format string, args ...any) error {
	return &Unavailable{Reason: fmt.Sprintf(format, args...)}
}

// newLayout returns the layout shared by all charts
func newLayout(title string, height int) map[string]any {
	return map[string]any{
		"title":  map[string]any{"text": title},
		"height": height,
		"margin": map[string]any{"l": 10, "r": 10, "t": 50, "b": 10},
	}
}

func axisTitles(layout map[string]any, x, y string) {
	layout["xaxis"] = map[string]any{"title": map[string]any{"text": x}}
	layout["yaxis"] = map[string]any{"title": map[string]any{"text": y}}
}

// nullable turns NaN and infinities into JSON null
func nullable(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// finite reports whether every value is a usable number
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
