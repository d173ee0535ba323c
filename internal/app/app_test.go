package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"realty/internal/config"
	"realty/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const columnsJSON = `["property_type", "sector", "bedRoom", "bathroom", "balcony", "agePossession",
	"built_up_area", "servant room", "store room", "furnishing_type", "luxury_category", "floor_category"]`

const modelJSON = `{"intercept": 1.0, "numeric": {"bedRoom": 0.05}, "handle_unknown": "ignore"}`

func testConfig(t *testing.T, columns string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	return &config.Config{
		Paths: config.PathsConfig{
			ModelPath:    write("price_model.json", modelJSON),
			ColumnsPath:  write("expected_columns.json", columns),
			ExamplesPath: filepath.Join(dir, "absent.json"),
			ExportDirs:   []string{dir},
			PrimaryFile:  "data_viz_full.csv",
		},
		Model: config.ModelConfig{Backend: "local"},
	}
}

func TestNew(t *testing.T) {
	a, err := New(testConfig(t, columnsJSON))
	require.NoError(t, err)
	defer a.Close()

	result, problems, err := a.Predictions.Predict(context.Background(), map[string]string{
		"bedRoom": "2", "bathroom": "2", "built_up_area": "1000",
		"property_type": "flat", "sector": "sector 45", "balcony": "1",
		"agePossession": "New Property", "furnishing_type": "unfurnished",
		"luxury_category": "Low", "floor_category": "Low Floor",
	})
	require.NoError(t, err)
	assert.Empty(t, problems)
	assert.Equal(t, "₹1.10 Cr", result.Display)

	resp, err := a.Analytics.Build(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, resp.Figures)
}

func TestNew_StartupFailures(t *testing.T) {
	t.Run("incompatible columns", func(t *testing.T) {
		_, err := New(testConfig(t, `["bedRoom", "bathroom"]`))
		var mismatch *schema.MismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Contains(t, mismatch.Missing, "servant room")
	})

	t.Run("missing columns file", func(t *testing.T) {
		cfg := testConfig(t, columnsJSON)
		cfg.Paths.ColumnsPath = filepath.Join(t.TempDir(), "absent.json")
		_, err := New(cfg)
		var loadErr *schema.LoadError
		require.ErrorAs(t, err, &loadErr)
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := testConfig(t, columnsJSON)
		cfg.Paths.ModelPath = filepath.Join(t.TempDir(), "absent.json")
		_, err := New(cfg)
		var loadErr *schema.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, cfg.Paths.ModelPath, loadErr.Path)
	})
}
