package service

import (
	"math"
	"testing"

	"realty/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		lat     float64
		lon     float64
		missing bool
	}{
		{name: "degrees north east", input: "28.4595° N, 77.0266° E", lat: 28.4595, lon: 77.0266},
		{name: "south", input: "33.8688° S, 151.2093° E", lat: -33.8688, lon: 151.2093},
		{name: "west", input: "40.7128 n, 74.0060 w", lat: 40.7128, lon: -74.0060},
		{name: "signed south", input: "-33.86 S, 151.2 E", lat: -33.86, lon: 151.2},
		{name: "signed west", input: "40.71 N, -74.0 W", lat: 40.71, lon: -74.0},
		{name: "signed without markers", input: "-33.86, -70.5", lat: -33.86, lon: -70.5},
		{name: "plain pair", input: "28.41,77.04", lat: 28.41, lon: 77.04},
		{name: "integers", input: "28 77", lat: 28, lon: 77},
		{name: "one number", input: "28.4", missing: true},
		{name: "no numbers", input: "unknown", missing: true},
		{name: "empty", input: "", missing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon := ParseCoordinates(tt.input)
			if tt.missing {
				assert.True(t, math.IsNaN(lat))
				assert.True(t, math.IsNaN(lon))
				return
			}
			assert.InDelta(t, tt.lat, lat, 1e-9)
			assert.InDelta(t, tt.lon, lon, 1e-9)
		})
	}
}

func primaryData() *dataset.Canonical {
	return dataset.NewCanonical(dataset.NewFrame(
		[]string{"sector", "price", "price_per_sqft", "built_up_area"},
		[][]string{
			{"Sector 45", "1.0", "8000", "1200"},
			{"sector 45 ", "2.0", "10000", ""},
			{"Sector 56", "3.0", "12000", "2000"},
			{"Sohna Road", "0.8", "6000", "1100"},
			{"", "5", "5", "5"},
		},
	))
}

func TestBuildSectorAggregates(t *testing.T) {
	raw := dataset.NewFrame(
		[]string{"Sector", "Coordinates"},
		[][]string{
			{"sector 45", "28.4595° N, 77.0266° E"},
			{"Sector 45", "1.0° N, 1.0° E"},
			{"sector 56", "28.4230° N, 77.1000° E"},
			{"sohna road", "not recorded"},
		},
	)

	out := BuildSectorAggregates(primaryData(), raw)

	// Sohna Road has no usable coordinates and is dropped
	require.Len(t, out, 2)

	assert.Equal(t, "Sector 45", out[0].Sector)
	assert.InDelta(t, 28.4595, out[0].Latitude, 1e-9)
	assert.InDelta(t, 77.0266, out[0].Longitude, 1e-9)
	assert.InDelta(t, 1.5, out[0].Price, 1e-9)
	assert.InDelta(t, 9000, out[0].PricePerSqft, 1e-9)
	assert.InDelta(t, 1200, out[0].Area, 1e-9)
	assert.Equal(t, 2, out[0].Count)

	assert.Equal(t, "Sector 56", out[1].Sector)
	assert.Equal(t, 1, out[1].Count)
}

func TestBuildSectorAggregates_LatLonColumns(t *testing.T) {
	raw := dataset.NewFrame(
		[]string{"sector_name", "lat", "lng"},
		[][]string{{"Sector 56", "28.42", "77.10"}},
	)

	out := BuildSectorAggregates(primaryData(), raw)
	require.Len(t, out, 1)
	assert.Equal(t, "Sector 56", out[0].Sector)
	assert.InDelta(t, 77.10, out[0].Longitude, 1e-9)
}

func TestBuildSectorAggregates_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		primary *dataset.Canonical
		raw     *dataset.Frame
	}{
		{name: "no coordinate table", primary: primaryData(), raw: nil},
		{name: "empty coordinate table", primary: primaryData(), raw: dataset.NewFrame([]string{"sector", "coordinates"}, nil)},
		{name: "no coordinate column", primary: primaryData(), raw: dataset.NewFrame([]string{"sector", "notes"}, [][]string{{"sector 45", "x"}})},
		{name: "no sector in primary", primary: dataset.NewCanonical(dataset.NewFrame([]string{"price"}, [][]string{{"1"}})),
			raw: dataset.NewFrame([]string{"sector", "coordinates"}, [][]string{{"sector 45", "28.4, 77.0"}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, BuildSectorAggregates(tt.primary, tt.raw))
		})
	}
}

func TestAggregatesFromFrame(t *testing.T) {
	c := dataset.NewCanonical(dataset.NewFrame(
		[]string{"sector", "price", "price_per_sqft", "built_up_area", "latitude", "longitude", "count"},
		[][]string{
			{"sector 45", "1.5", "9000", "1200", "28.45", "77.02", "12"},
			{"sector 56", "3", "12000", "", "", "", ""},
		},
	))

	out := AggregatesFromFrame(c)
	require.Len(t, out, 2)
	assert.Equal(t, 12, out[0].Count)
	assert.InDelta(t, 28.45, out[0].Latitude, 1e-9)
	assert.True(t, math.IsNaN(out[1].Latitude))
	assert.Zero(t, out[1].Count)

	assert.Nil(t, AggregatesFromFrame(nil))
}
