package charts

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"realty/internal/dataset"
)

var roleLabels = map[dataset.Role]string{
	dataset.RoleSector:       "sector",
	dataset.RoleLat:          "latitude",
	dataset.RoleLon:          "longitude",
	dataset.RolePrice:        "price",
	dataset.RolePricePerArea: "price_per_sqft",
	dataset.RoleArea:         "built_up_area",
	dataset.RoleBedrooms:     "bedRoom",
	dataset.RolePropertyType: "property_type",
}

const (
	labelArea   = "Built-up Area (sqft)"
	labelPrice  = "Price (Cr)"
	labelPSF    = "PSF (₹)"
	labelBHK    = "BHK"
	labelLuxury = "Luxury Score"
)

// requireRoles fails when the primary dataset lacks a role
func requireRoles(c *dataset.Canonical, roles ...dataset.Role) error {
	missing := c.Missing(roles...)
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, r := range missing {
		names[i] = roleLabels[r]
	}
	return unavailable("Missing %s in the primary dataset.", strings.Join(names, " or "))
}

func nullables(values []float64) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = nullable(v)
	}
	return out
}

// categories returns the property type of every row, or nil
func categories(c *dataset.Canonical) []string {
	if !c.Has(dataset.RolePropertyType) {
		return nil
	}
	return c.Strings(dataset.RolePropertyType)
}

func markerTrace(x, y []float64, opacity float64) map[string]any {
	return map[string]any{
		"type":    "scattergl",
		"mode":    "markers",
		"x":       x,
		"y":       y,
		"opacity": opacity,
	}
}

// colourByBHK colours a marker trace by bedroom count when known
func colourByBHK(trace map[string]any, c *dataset.Canonical, rows []int) {
	bhk := c.Floats(dataset.RoleBedrooms)
	if bhk == nil {
		return
	}
	trace["marker"] = map[string]any{
		"color":      nullables(pick(bhk, rows)),
		"colorscale": "Viridis",
		"showscale":  true,
		"colorbar":   map[string]any{"title": map[string]any{"text": labelBHK}},
	}
}

func buildMapSector(_ *Pipeline, in Input) (*Figure, error) {
	var lat, lon, psf []float64
	var size []any
	var text []string
	for _, s := range in.Sectors {
		if !finite(s.Latitude, s.Longitude, s.PricePerSqft) {
			continue
		}
		lat = append(lat, s.Latitude)
		lon = append(lon, s.Longitude)
		psf = append(psf, s.PricePerSqft)
		size = append(size, nullable(s.Area))
		text = append(text, s.Sector)
	}
	if len(lat) == 0 {
		return nil, unavailable("No map data available.")
	}

	marker := map[string]any{
		"color":      psf,
		"colorscale": "IceFire",
		"showscale":  true,
		"colorbar":   map[string]any{"title": map[string]any{"text": "Price per Sqft"}},
	}
	if maxArea := maxOf(size); maxArea > 0 {
		marker["size"] = size
		marker["sizemode"] = "area"
		marker["sizeref"] = 2 * maxArea / (20 * 20)
		marker["sizemin"] = 3
	}

	layout := newLayout("Average Price per Sqft by Sector", 520)
	layout["margin"] = map[string]any{"l": 0, "r": 0, "t": 40, "b": 0}
	layout["mapbox"] = map[string]any{
		"style":  "open-street-map",
		"zoom":   10,
		"center": map[string]any{"lat": dataset.Mean(lat), "lon": dataset.Mean(lon)},
	}
	return &Figure{
		Data: []map[string]any{{
			"type":   "scattermapbox",
			"mode":   "markers",
			"lat":    lat,
			"lon":    lon,
			"text":   text,
			"marker": marker,
		}},
		Layout: layout,
	}, nil
}

func maxOf(values []any) float64 {
	m := 0.0
	for _, v := range values {
		if f, ok := v.(float64); ok && f > m {
			m = f
		}
	}
	return m
}

func buildScatterAreaPrice(p *Pipeline, in Input) (*Figure, error) {
	c := in.Data
	if err := requireRoles(c, dataset.RoleArea, dataset.RolePrice); err != nil {
		return nil, err
	}
	area, price := c.Floats(dataset.RoleArea), c.Floats(dataset.RolePrice)
	rows := rowsWhere(c.Len(), area, price)
	if len(rows) == 0 {
		return nil, unavailable("No rows for scatter (built_up_area & price).")
	}
	rows = subsample(rows, p.opts.SampleSize, p.opts.Seed)

	trace := markerTrace(pick(area, rows), pick(price, rows), 0.8)
	colourByBHK(trace, c, rows)

	layout := newLayout("Built-up Area vs Price", 420)
	axisTitles(layout, labelArea, labelPrice)
	return &Figure{Data: []map[string]any{trace}, Layout: layout}, nil
}

// bhkRows returns rows with a known bedroom count up to the limit and a
// known value
func bhkRows(c *dataset.Canonical, values []float64, maxBHK float64) []int {
	bhk := c.Floats(dataset.RoleBedrooms)
	var rows []int
	for _, r := range rowsWhere(c.Len(), bhk, values) {
		if bhk[r] <= maxBHK {
			rows = append(rows, r)
		}
	}
	return rows
}

func buildBoxBHKPrice(p *Pipeline, in Input) (*Figure, error) {
	c := in.Data
	if err := requireRoles(c, dataset.RoleBedrooms, dataset.RolePrice); err != nil {
		return nil, err
	}
	price := clip(c.Floats(dataset.RolePrice), p.opts.ClipQuantile)
	rows := bhkRows(c, price, p.opts.MaxBHK)
	if len(rows) == 0 {
		return nil, unavailable("No rows for BHK-wise price distribution.")
	}

	layout := newLayout("BHK-wise Price Distribution", 420)
	axisTitles(layout, labelBHK, labelPrice)
	return &Figure{
		Data: []map[string]any{{
			"type":      "box",
			"x":         pick(c.Floats(dataset.RoleBedrooms), rows),
			"y":         pick(price, rows),
			"boxpoints": "outliers",
		}},
		Layout: layout,
	}, nil
}

func buildPieBHK(_ *Pipeline, in Input) (*Figure, error) {
	c := in.Data
	if err := requireRoles(c, dataset.RoleBedrooms); err != nil {
		return nil, err
	}
	bhk := c.Floats(dataset.RoleBedrooms)
	counts := map[int]int{}
	for _, r := range rowsWhere(c.Len(), bhk) {
		counts[int(bhk[r])]++
	}
	if len(counts) == 0 {
		return nil, unavailable("No rows for bedroom distribution.")
	}
	labels := make([]int, 0, len(counts))
	for k := range counts {
		labels = append(labels, k)
	}
	sort.Ints(labels)
	values := make([]int, len(labels))
	for i, k := range labels {
		values[i] = counts[k]
	}

	return &Figure{
		Data: []map[string]any{{
			"type":   "pie",
			"labels": labels,
			"values": values,
			"hole":   0.35,
			"sort":   false,
		}},
		Layout: newLayout("Bedroom Distribution", 400),
	}, nil
}

// histogram draws one overlaid histogram per property type, or a single
// one when the type is unknown
func histogram(c *dataset.Canonical, values []float64, rows []int, nbins int) []map[string]any {
	trace := func(name string, rows []int) map[string]any {
		t := map[string]any{
			"type":    "histogram",
			"x":       pick(values, rows),
			"opacity": 0.85,
		}
		if nbins > 0 {
			t["nbinsx"] = nbins
		}
		if name != "" {
			t["name"] = name
		}
		return t
	}

	types := categories(c)
	if types == nil {
		return []map[string]any{trace("", rows)}
	}
	names, groups := groupRows(types, rows)
	data := make([]map[string]any, 0, len(names))
	for _, name := range names {
		data = append(data, trace(name, groups[name]))
	}
	return data
}

func buildHistPriceType(p *Pipeline, in Input) (*Figure, error) {
	c := in.Data
	if err := requireRoles(c, dataset.RolePrice); err != nil {
		return nil, err
	}
	price := clip(c.Floats(dataset.RolePrice), p.opts.ClipQuantile)
	rows := rowsWhere(c.Len(), price)
	if len(rows) == 0 {
		return nil, unavailable("No data for price distribution.")
	}

	layout := newLayout("Price Distribution by Property Type", 420)
	layout["barmode"] = "overlay"
	axisTitles(layout, labelPrice, "Listings")
	return &Figure{Data: histogram(c, price, rows, 0), Layout: layout}, nil
}

func buildHistPricePSF(p *Pipeline, in Input) (*Figure, error) {
	c := in.Data
	if err := requireRoles(c, dataset.RolePricePerArea); err != nil {
		return nil, err
	}
	psf := clip(c.Floats(dataset.RolePricePerArea), p.opts.ClipQuantile)
	rows := rowsWhere(c.Len(), psf)
	if len(rows) == 0 {
		return nil, unavailable("No data for price per sqft distribution.")
	}

	layout := newLayout("Price per Sqft Distribution", 420)
	layout["barmode"] = "overlay"
	axisTitles(layout, "Price per Sqft (₹)", "Listings")
	return &Figure{Data: histogram(c, psf, rows, 50), Layout: layout}, nil
}

func buildBarSectorPSF(p *Pipeline, in Input) (*Figure, error) {
	if len(in.Sectors) == 0 {
		return nil, unavailable("No sector PSF data available.")
	}
	type bar struct {
		sector string
		psf    float64
	}
	var bars []bar
	for _, s := range in.Sectors {
		if strings.TrimSpace(s.Sector) == "" || !finite(s.PricePerSqft) {
			continue
		}
		bars = append(bars, bar{s.Sector, s.PricePerSqft})
	}
	if len(bars) == 0 {
		return nil, unavailable("No sector PSF data available after cleaning.")
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].psf > bars[j].psf })
	if len(bars) > p.opts.TopSectors {
		bars = bars[:p.opts.TopSectors]
	}

	x := make([]string, len(bars))
	y := make([]float64, len(bars))
	for i, b := range bars {
		x[i], y[i] = b.sector, b.psf
	}

	layout := newLayout("Top "+strconv.Itoa(len(bars))+" Sectors by Avg Price per Sqft", 420)
	layout["margin"] = map[string]any{"l": 10, "r": 10, "t": 50, "b": 100}
	axisTitles(layout, "Sector", "Avg PSF (₹)")
	layout["xaxis"].(map[string]any)["tickangle"] = -35
	return &Figure{
		Data:   []map[string]any{{"type": "bar", "x": x, "y": y}},
		Layout: layout,
	}, nil
}

func buildViolinBHKPSF(p *Pipeline, in Input) (*Figure, error) {
	c := in.Data
	if err := requireRoles(c, dataset.RoleBedrooms, dataset.RolePricePerArea); err != nil {
		return nil, err
	}
	psf := clip(c.Floats(dataset.RolePricePerArea), p.opts.ClipQuantile)
	rows := bhkRows(c, psf, p.opts.MaxBHK)
	if len(rows) == 0 {
		return nil, unavailable("No data for PSF by BHK.")
	}

	layout := newLayout("Price per Sqft by BHK (Violin)", 420)
	axisTitles(layout, labelBHK, labelPSF)
	return &Figure{
		Data: []map[string]any{{
			"type":   "violin",
			"x":      pick(c.Floats(dataset.RoleBedrooms), rows),
			"y":      pick(psf, rows),
			"box":    map[string]any{"visible": true},
			"points": "outliers",
		}},
		Layout: layout,
	}, nil
}

func buildScatterAreaPSF(p *Pipeline, in Input) (*Figure, error) {
	c := in.Data
	if err := requireRoles(c, dataset.RoleArea, dataset.RolePricePerArea); err != nil {
		return nil, err
	}
	area, psf := c.Floats(dataset.RoleArea), c.Floats(dataset.RolePricePerArea)
	rows := rowsWhere(c.Len(), area, psf)
	if len(rows) == 0 {
		return nil, unavailable("No data for area vs PSF.")
	}
	rows = subsample(rows, p.opts.SampleSize, p.opts.Seed)

	trace := markerTrace(pick(area, rows), pick(psf, rows), 0.75)
	colourByBHK(trace, c, rows)

	layout := newLayout("Built-up Area vs Price per Sqft", 420)
	axisTitles(layout, labelArea, labelPSF)
	return &Figure{Data: []map[string]any{trace}, Layout: layout}, nil
}

func buildScatterLuxuryPSF(p *Pipeline, in Input) (*Figure, error) {
	c := in.Data
	luxury, ok := c.Extra("luxury_score")
	if !ok {
		return nil, unavailable("Requires luxury_score and price_per_sqft.")
	}
	if err := requireRoles(c, dataset.RolePricePerArea); err != nil {
		return nil, err
	}
	psf := c.Floats(dataset.RolePricePerArea)
	rows := rowsWhere(c.Len(), luxury, psf)
	if len(rows) == 0 {
		return nil, unavailable("No data for luxury vs PSF.")
	}
	rows = subsample(rows, p.opts.SampleSize, p.opts.Seed)

	var data []map[string]any
	if types := categories(c); types != nil {
		names, groups := groupRows(types, rows)
		for _, name := range names {
			t := markerTrace(pick(luxury, groups[name]), pick(psf, groups[name]), 0.75)
			t["name"] = name
			data = append(data, t)
		}
	} else {
		data = []map[string]any{markerTrace(pick(luxury, rows), pick(psf, rows), 0.75)}
	}

	layout := newLayout("Luxury Score vs Price per Sqft", 420)
	axisTitles(layout, labelLuxury, labelPSF)
	return &Figure{Data: data, Layout: layout}, nil
}

// correlationInputs lists the numeric series a computed heatmap covers
func correlationInputs(c *dataset.Canonical) ([]string, [][]float64) {
	var names []string
	var cols [][]float64
	for _, r := range []dataset.Role{dataset.RoleArea, dataset.RolePrice, dataset.RolePricePerArea, dataset.RoleBedrooms} {
		if col, ok := c.Column(r); ok {
			names = append(names, col)
			cols = append(cols, c.Floats(r))
		}
	}
	for _, extra := range dataset.ExtraColumns {
		if v, ok := c.Extra(extra); ok {
			names = append(names, c.ExtraColumn(extra))
			cols = append(cols, v)
		}
	}
	return names, cols
}

func buildHeatmapCorr(_ *Pipeline, in Input) (*Figure, error) {
	m := in.Corr
	if m == nil || len(m.Columns) == 0 {
		names, cols := correlationInputs(in.Data)
		if len(names) < 2 {
			return nil, unavailable("No numeric columns available for correlation.")
		}
		if in.Data.Len() == 0 {
			return nil, unavailable("No data for correlation heatmap.")
		}
		m = dataset.Correlate(names, cols)
	}

	z := make([][]any, len(m.Values))
	text := make([][]string, len(m.Values))
	anyValue := false
	for i, row := range m.Values {
		z[i] = make([]any, len(row))
		text[i] = make([]string, len(row))
		for j, v := range row {
			z[i][j] = nullable(v)
			if !math.IsNaN(v) {
				anyValue = true
				text[i][j] = strconv.FormatFloat(v, 'f', 2, 64)
			}
		}
	}
	if !anyValue {
		return nil, unavailable("No data for correlation heatmap.")
	}

	layout := newLayout("Feature Correlation Heatmap", 520)
	return &Figure{
		Data: []map[string]any{{
			"type":         "heatmap",
			"x":            m.Columns,
			"y":            m.Columns,
			"z":            z,
			"text":         text,
			"texttemplate": "%{text}",
			"colorscale":   "RdBu",
			"zmin":         -1,
			"zmax":         1,
		}},
		Layout: layout,
	}, nil
}
