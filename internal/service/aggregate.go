package service

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"realty/internal/dataset"
	"realty/internal/model"
	"realty/internal/utils"

	"github.com/rs/zerolog/log"
)

// coordinateSynonyms name the free-text coordinate column of the raw
// sector coordinate table
var coordinateSynonyms = []string{"coordinates", "coordinate", "latlong", "lat_long", "coords"}

// countSynonyms name the listing count column of a precomputed summary
var countSynonyms = []string{"count", "listings", "listing_count", "n"}

var numberPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// ParseCoordinates extracts latitude and longitude from free text such as
// "28.4595° N, 77.0266° E". The first two numbers are used. Latitude is
// southern (negative) when the text contains an 'S', longitude western when
// it contains a 'W', whether or not the number already carries a sign.
// Both values are NaN when fewer than two numbers are present.
func ParseCoordinates(s string) (lat, lon float64) {
	tokens := numberPattern.FindAllString(s, 2)
	if len(tokens) < 2 {
		return math.NaN(), math.NaN()
	}
	lat, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return math.NaN(), math.NaN()
	}
	lon, err = strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return math.NaN(), math.NaN()
	}
	upper := strings.ToUpper(s)
	if strings.Contains(upper, "S") {
		lat = -math.Abs(lat)
	}
	if strings.Contains(upper, "W") {
		lon = -math.Abs(lon)
	}
	return lat, lon
}

type coordinate struct {
	lat, lon float64
}

// coordinateIndex maps normalized sector names to parsed coordinates.
// The first row of a sector wins.
func coordinateIndex(raw *dataset.Frame) (map[string]coordinate, error) {
	sectorCol, ok := dataset.Resolve(raw.Columns, dataset.RoleSector)
	if !ok {
		return nil, fmt.Errorf("coordinate table has no sector column")
	}
	sectors := raw.Strings(sectorCol)

	var lats, lons []float64
	if col, ok := utils.MatchColumn(raw.Columns, coordinateSynonyms); ok {
		texts := raw.Strings(col)
		lats = make([]float64, len(texts))
		lons = make([]float64, len(texts))
		for i, text := range texts {
			lats[i], lons[i] = ParseCoordinates(text)
		}
	} else {
		latCol, okLat := dataset.Resolve(raw.Columns, dataset.RoleLat)
		lonCol, okLon := dataset.Resolve(raw.Columns, dataset.RoleLon)
		if !okLat || !okLon {
			return nil, fmt.Errorf("coordinate table has no coordinate column")
		}
		lats = raw.Floats(latCol)
		lons = raw.Floats(lonCol)
	}

	index := make(map[string]coordinate, len(sectors))
	for i, s := range sectors {
		key := utils.NormalizeName(s)
		if key == "" {
			continue
		}
		if _, seen := index[key]; seen {
			continue
		}
		index[key] = coordinate{lat: lats[i], lon: lons[i]}
	}
	return index, nil
}

type sectorGroup struct {
	name  string
	lat   []float64
	lon   []float64
	price []float64
	ppa   []float64
	area  []float64
}

// BuildSectorAggregates derives per-sector summaries from the primary
// dataset and a raw coordinate table. Sectors without coordinates are
// dropped. Returns nil when no summary can be built.
func BuildSectorAggregates(primary *dataset.Canonical, raw *dataset.Frame) (out []model.SectorAggregate) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Sector aggregate fallback failed")
			out = nil
		}
	}()

	if primary == nil || raw == nil || raw.Len() == 0 {
		return nil
	}
	if !primary.Has(dataset.RoleSector) {
		log.Warn().Msg("Primary dataset has no sector column, cannot derive sector aggregates")
		return nil
	}
	index, err := coordinateIndex(raw)
	if err != nil {
		log.Warn().Err(err).Msg("Cannot derive sector aggregates")
		return nil
	}

	sectors := primary.Strings(dataset.RoleSector)
	price := valuesOrMissing(primary.Floats(dataset.RolePrice), len(sectors))
	ppa := valuesOrMissing(primary.Floats(dataset.RolePricePerArea), len(sectors))
	area := valuesOrMissing(primary.Floats(dataset.RoleArea), len(sectors))

	groups := map[string]*sectorGroup{}
	var order []string
	for i, s := range sectors {
		key := utils.NormalizeName(s)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &sectorGroup{name: s}
			groups[key] = g
			order = append(order, key)
		}
		c, ok := index[key]
		if !ok {
			c = coordinate{lat: math.NaN(), lon: math.NaN()}
		}
		g.lat = append(g.lat, c.lat)
		g.lon = append(g.lon, c.lon)
		g.price = append(g.price, price[i])
		g.ppa = append(g.ppa, ppa[i])
		g.area = append(g.area, area[i])
	}

	for _, key := range order {
		g := groups[key]
		agg := model.SectorAggregate{
			Sector:       g.name,
			Latitude:     dataset.Mean(g.lat),
			Longitude:    dataset.Mean(g.lon),
			Price:        dataset.Mean(g.price),
			PricePerSqft: dataset.Mean(g.ppa),
			Area:         dataset.Mean(g.area),
			Count:        len(g.lat),
		}
		if math.IsNaN(agg.Latitude) || math.IsNaN(agg.Longitude) {
			continue
		}
		out = append(out, agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sector < out[j].Sector })

	log.Info().
		Int("sectors", len(out)).
		Int("rows", primary.Len()).
		Msg("Derived sector aggregates from coordinate table")
	return out
}

// AggregatesFromFrame reads a precomputed sector summary. Rows are kept
// as-is; consumers skip values they cannot plot.
func AggregatesFromFrame(c *dataset.Canonical) []model.SectorAggregate {
	if c == nil || c.Len() == 0 {
		return nil
	}
	n := c.Len()
	sectors := c.Strings(dataset.RoleSector)
	if sectors == nil {
		sectors = make([]string, n)
	}
	lat := valuesOrMissing(c.Floats(dataset.RoleLat), n)
	lon := valuesOrMissing(c.Floats(dataset.RoleLon), n)
	price := valuesOrMissing(c.Floats(dataset.RolePrice), n)
	ppa := valuesOrMissing(c.Floats(dataset.RolePricePerArea), n)
	area := valuesOrMissing(c.Floats(dataset.RoleArea), n)

	var counts []float64
	if col, ok := utils.MatchColumn(c.Frame().Columns, countSynonyms); ok {
		counts = c.Frame().Floats(col)
	}

	out := make([]model.SectorAggregate, n)
	for i := 0; i < n; i++ {
		out[i] = model.SectorAggregate{
			Sector:       sectors[i],
			Latitude:     lat[i],
			Longitude:    lon[i],
			Price:        price[i],
			PricePerSqft: ppa[i],
			Area:         area[i],
		}
		if counts != nil && !math.IsNaN(counts[i]) {
			out[i].Count = int(counts[i])
		}
	}
	return out
}

func valuesOrMissing(values []float64, n int) []float64 {
	if values != nil {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
