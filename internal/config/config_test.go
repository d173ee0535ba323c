package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "local", cfg.Model.Backend)
	assert.Equal(t, 6000, cfg.Analytics.SampleSize)
	assert.Equal(t, int64(42), cfg.Analytics.Seed)
	assert.Equal(t, 0.99, cfg.Analytics.ClipQuantile)
	assert.Equal(t, 15, cfg.Analytics.TopSectors)
	assert.Equal(t, float64(8), cfg.Analytics.MaxBHK)
	assert.Equal(t, "2.32.0", cfg.Analytics.PlotlyCDNVersion)
	assert.Equal(t, "Saved_Model/expected_columns.json", cfg.Paths.ColumnsPath)
	assert.Empty(t, cfg.Paths.ExportDirs)
	assert.False(t, cfg.PostgreSQL.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EXPORT_DIRS", "exports/a, exports/b,,")
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("ANALYTICS_SAMPLE_SIZE", "100")
	t.Setenv("PG_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"exports/a", "exports/b"}, cfg.Paths.ExportDirs)
	assert.Equal(t, 8080, cfg.Server.Port, "invalid integers fall back to the default")
	assert.Equal(t, 100, cfg.Analytics.SampleSize)
	assert.True(t, cfg.PostgreSQL.Enabled)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "realty.yaml")
	content := "server_port: 9090\nmodel_backend: remote\nmodel_remote_url: http://models:8500\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "remote", cfg.Model.Backend)
	assert.Equal(t, "http://models:8500", cfg.Model.RemoteURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("MODEL_BACKEND", "onnx")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("remote without url", func(t *testing.T) {
		t.Setenv("MODEL_BACKEND", "remote")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestGetPostgreSQLDSN(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=disable", cfg.GetPostgreSQLDSN())

	cfg.PostgreSQL.DSN = "postgres://u:p@db/d"
	assert.Equal(t, "postgres://u:p@db/d", cfg.GetPostgreSQLDSN())
}
