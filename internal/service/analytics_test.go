package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"realty/internal/charts"
	"realty/internal/config"
	"realty/internal/dataset"
	"realty/internal/repository"
	"realty/internal/wordcloud"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const primaryCSV = "\ufeffproperty_type,sector,price,price_per_sqft,bedRoom,built_up_area,luxury_score\n" +
	"flat,sector 45,1.2,9000,3,1300,80\n" +
	"house,sector 45,2.5,11000,4,2200,120\n" +
	"flat,sector 56,0.9,7000,2,1200,40\n" +
	"flat,sector 56,1.1,7500,2,1450,60\n"

func testPaths() config.PathsConfig {
	return config.PathsConfig{
		PrimaryFile:     "data_viz_full.csv",
		SectorFile:      "grouped_sector_data.csv",
		CorrelationFile: "correlation_matrix.csv",
		FeatureTextFile: "sector_feature_map.json",
		LatLongFile:     "latlong.csv",
	}
}

func writeData(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newAnalytics(dir string, primary PrimarySource) *AnalyticsService {
	store := repository.NewFileStore(repository.NewLocator([]string{dir}, "", nil))
	return NewAnalyticsService(
		store,
		primary,
		charts.NewPipeline(charts.DefaultOptions(), nil),
		wordcloud.NewRenderer(200, 150, 20),
		testPaths(),
		nil,
	)
}

func TestAnalyticsService_Build(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "data_viz_full.csv", primaryCSV)
	writeData(t, dir, "latlong.csv", "sector,coordinates\nsector 45,\"28.45° N, 77.02° E\"\nsector 56,\"28.42° N, 77.10° E\"\n")
	writeData(t, dir, "sector_feature_map.json", `{"sector 56": "metro park metro", "sector 45": ["school", "mall"]}`)

	resp, err := newAnalytics(dir, nil).Build(context.Background(), "")
	require.NoError(t, err)

	assert.Len(t, resp.Figures, len(charts.Keys()))
	assert.False(t, resp.Figures[charts.KeyMapSector].IsPlaceholder(), resp.Figures[charts.KeyMapSector].Placeholder)
	assert.False(t, resp.Figures[charts.KeyHeatmapCorr].IsPlaceholder())
	assert.Equal(t, []string{"sector 45", "sector 56"}, resp.Sectors)
	assert.Equal(t, "sector 45", resp.SelectedSector)
	assert.NotEmpty(t, resp.WordCloud)
	assert.Equal(t, 4, resp.Rows)
	assert.Equal(t, 2, resp.SectorRows)
}

func TestAnalyticsService_PrecomputedSummaryWins(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "data_viz_full.csv", primaryCSV)
	writeData(t, dir, "grouped_sector_data.csv",
		"sector,price,price_per_sqft,built_up_area,latitude,longitude\nsector 99,3,15000,2000,28.5,77.0\n")
	writeData(t, dir, "latlong.csv", "sector,coordinates\nsector 45,\"28.45, 77.02\"\n")

	resp, err := newAnalytics(dir, nil).Build(context.Background(), "sector 56")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.SectorRows)
	assert.Equal(t, "sector 56", resp.SelectedSector)
	// no text map, so the options come from the dataset
	assert.Equal(t, []string{"sector 45", "sector 56"}, resp.Sectors)
}

func TestAnalyticsService_MissingPrimary(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "sector_feature_map.json", `{"sector 1": "lake view"}`)

	resp, err := newAnalytics(dir, nil).Build(context.Background(), "")
	require.NoError(t, err)

	assert.Empty(t, resp.Figures)
	assert.Equal(t, []string{"sector 1"}, resp.Sectors)
	assert.NotEmpty(t, resp.WordCloud)
}

type stubSource struct {
	frame *dataset.Frame
	err   error
}

func (s *stubSource) LoadPrimary(context.Context) (*dataset.Frame, error) {
	return s.frame, s.err
}

func TestAnalyticsService_PrimarySource(t *testing.T) {
	dir := t.TempDir()

	t.Run("database rows", func(t *testing.T) {
		src := &stubSource{frame: dataset.NewFrame(
			[]string{"price", "bedrooms", "location"},
			[][]string{{"1.5", "2", "sector 9"}},
		)}
		resp, err := newAnalytics(dir, src).Build(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Rows)
		assert.Equal(t, []string{"sector 9"}, resp.Sectors)
		assert.False(t, resp.Figures[charts.KeyPieBHK].IsPlaceholder())
	})

	t.Run("database failure", func(t *testing.T) {
		src := &stubSource{err: errors.New("connection refused")}
		_, err := newAnalytics(dir, src).Build(context.Background(), "")
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestSectorOptions(t *testing.T) {
	data := dataset.NewCanonical(dataset.NewFrame([]string{"sector"}, [][]string{{"b"}, {"a"}, {""}, {"b"}}))

	assert.Equal(t, []string{"x", "y"}, SectorOptions(map[string]string{"y": "", "x": ""}, data))
	assert.Equal(t, []string{"a", "b"}, SectorOptions(nil, data))
	assert.Empty(t, SectorOptions(nil, nil))
}
