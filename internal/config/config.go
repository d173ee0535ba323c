package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Paths      PathsConfig
	Model      ModelConfig
	Analytics  AnalyticsConfig
	WordCloud  WordCloudConfig
	Logging    LoggingConfig
	Metrics    MetricsConfig
}

// PostgreSQLConfig holds the optional listings database configuration.
// When Enabled is false the primary dataset is read from exported files.
type PostgreSQLConfig struct {
	Enabled            bool
	DSN                string // full connection string, preferred over the fields below
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	Table              string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// PathsConfig locates the model artifacts and analytics datasets
type PathsConfig struct {
	ModelPath    string
	ColumnsPath  string
	ExamplesPath string
	// ExportDirs is probed in order before the built-in candidate directories
	ExportDirs      []string
	DatasetDir      string
	PrimaryFile     string
	SectorFile      string
	CorrelationFile string
	FeatureTextFile string
	LatLongFile     string
}

// ModelConfig selects the inference backend
type ModelConfig struct {
	Backend   string // local or remote
	RemoteURL string
	Timeout   int // seconds
}

// AnalyticsConfig holds chart assembly tuning
type AnalyticsConfig struct {
	SampleSize       int
	Seed             int64
	ClipQuantile     float64
	TopSectors       int
	MaxBHK           float64
	PlotlyCDNVersion string
}

// WordCloudConfig holds keyword image settings
type WordCloudConfig struct {
	Width    int
	Height   int
	MaxWords int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// MetricsConfig holds prometheus exposition settings
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from a .env file, an optional YAML file and the
// environment. Precedence: env > config file > defaults. An empty path
// looks for realty.yaml in the working directory and ignores its absence.
func Load(path string) (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("realty")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			Enabled: getBool(v, "PG_ENABLED"),
			// DATABASE_URL, POSTGRESQL_URI, PG_DSN in that order
			DSN:                firstNonEmpty(v.GetString("DATABASE_URL"), v.GetString("POSTGRESQL_URI"), v.GetString("PG_DSN")),
			Host:               v.GetString("PG_HOST"),
			Port:               getInt(v, "PG_PORT"),
			User:               v.GetString("PG_USER"),
			Password:           v.GetString("PG_PASSWORD"),
			Database:           v.GetString("PG_DATABASE"),
			SSLMode:            v.GetString("PG_SSLMODE"),
			MaxConnections:     getInt(v, "PG_MAX_CONNECTIONS"),
			MaxIdleConnections: getInt(v, "PG_MAX_IDLE_CONNECTIONS"),
			Table:              v.GetString("PG_LISTINGS_TABLE"),
		},
		Server: ServerConfig{
			Port:           getInt(v, "SERVER_PORT"),
			Host:           v.GetString("SERVER_HOST"),
			GinMode:        v.GetString("GIN_MODE"),
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: v.GetString("CORS_ALLOWED_METHODS"),
			AllowedHeaders: v.GetString("CORS_ALLOWED_HEADERS"),
		},
		Paths: PathsConfig{
			ModelPath:       v.GetString("MODEL_PATH"),
			ColumnsPath:     v.GetString("COLUMNS_PATH"),
			ExamplesPath:    v.GetString("EXAMPLES_PATH"),
			ExportDirs:      SplitList(v.GetString("EXPORT_DIRS")),
			DatasetDir:      v.GetString("DATASET_DIR"),
			PrimaryFile:     v.GetString("PRIMARY_FILE"),
			SectorFile:      v.GetString("SECTOR_FILE"),
			CorrelationFile: v.GetString("CORRELATION_FILE"),
			FeatureTextFile: v.GetString("FEATURE_TEXT_FILE"),
			LatLongFile:     v.GetString("LATLONG_FILE"),
		},
		Model: ModelConfig{
			Backend:   strings.ToLower(v.GetString("MODEL_BACKEND")),
			RemoteURL: v.GetString("MODEL_REMOTE_URL"),
			Timeout:   getInt(v, "MODEL_TIMEOUT"),
		},
		Analytics: AnalyticsConfig{
			SampleSize:       getInt(v, "ANALYTICS_SAMPLE_SIZE"),
			Seed:             int64(getInt(v, "ANALYTICS_SEED")),
			ClipQuantile:     getFloat(v, "ANALYTICS_CLIP_QUANTILE"),
			TopSectors:       getInt(v, "ANALYTICS_TOP_SECTORS"),
			MaxBHK:           getFloat(v, "ANALYTICS_MAX_BHK"),
			PlotlyCDNVersion: v.GetString("PLOTLY_CDN_VERSION"),
		},
		WordCloud: WordCloudConfig{
			Width:    getInt(v, "WORDCLOUD_WIDTH"),
			Height:   getInt(v, "WORDCLOUD_HEIGHT"),
			MaxWords: getInt(v, "WORDCLOUD_MAX_WORDS"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED"),
			Path:    v.GetString("METRICS_PATH"),
		},
	}

	if cfg.Model.Backend != "local" && cfg.Model.Backend != "remote" {
		return nil, fmt.Errorf("invalid MODEL_BACKEND %q (want local or remote)", cfg.Model.Backend)
	}
	if cfg.Model.Backend == "remote" && cfg.Model.RemoteURL == "" {
		return nil, fmt.Errorf("MODEL_REMOTE_URL is required when MODEL_BACKEND=remote")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PG_ENABLED", false)
	v.SetDefault("PG_HOST", "localhost")
	v.SetDefault("PG_PORT", 5432)
	v.SetDefault("PG_USER", "postgres")
	v.SetDefault("PG_PASSWORD", "")
	v.SetDefault("PG_DATABASE", "property_search")
	v.SetDefault("PG_SSLMODE", "disable")
	v.SetDefault("PG_MAX_CONNECTIONS", 25)
	v.SetDefault("PG_MAX_IDLE_CONNECTIONS", 5)
	v.SetDefault("PG_LISTINGS_TABLE", "listing_info")

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Content-Type,Authorization")

	v.SetDefault("MODEL_PATH", "Saved_Model/price_model.json")
	v.SetDefault("COLUMNS_PATH", "Saved_Model/expected_columns.json")
	v.SetDefault("EXAMPLES_PATH", "Saved_Model/form_examples.json")
	v.SetDefault("EXPORT_DIRS", "")
	v.SetDefault("DATASET_DIR", "Dataset")
	v.SetDefault("PRIMARY_FILE", "data_viz_full.csv")
	v.SetDefault("SECTOR_FILE", "grouped_sector_data.csv")
	v.SetDefault("CORRELATION_FILE", "correlation_matrix.csv")
	v.SetDefault("FEATURE_TEXT_FILE", "sector_feature_map.json")
	v.SetDefault("LATLONG_FILE", "latlong.csv")

	v.SetDefault("MODEL_BACKEND", "local")
	v.SetDefault("MODEL_REMOTE_URL", "")
	v.SetDefault("MODEL_TIMEOUT", 30)

	v.SetDefault("ANALYTICS_SAMPLE_SIZE", 6000)
	v.SetDefault("ANALYTICS_SEED", 42)
	v.SetDefault("ANALYTICS_CLIP_QUANTILE", 0.99)
	v.SetDefault("ANALYTICS_TOP_SECTORS", 15)
	v.SetDefault("ANALYTICS_MAX_BHK", 8)
	v.SetDefault("PLOTLY_CDN_VERSION", "2.32.0")

	v.SetDefault("WORDCLOUD_WIDTH", 700)
	v.SetDefault("WORDCLOUD_HEIGHT", 500)
	v.SetDefault("WORDCLOUD_MAX_WORDS", 200)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_PATH", "/metrics")
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// SplitList splits a comma-separated list, dropping blank entries
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper functions

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}

func defaultString(key string) string {
	// A fresh instance carries only the defaults
	d := viper.New()
	setDefaults(d)
	return d.GetString(key)
}

func getInt(v *viper.Viper, key string) int {
	raw := strings.TrimSpace(v.GetString(key))
	value, err := strconv.Atoi(raw)
	if err != nil {
		def, _ := strconv.Atoi(defaultString(key))
		log.Warn().Str("key", key).Str("value", raw).Msgf("Invalid integer value, using default %d", def)
		return def
	}
	return value
}

func getFloat(v *viper.Viper, key string) float64 {
	raw := strings.TrimSpace(v.GetString(key))
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		def, _ := strconv.ParseFloat(defaultString(key), 64)
		log.Warn().Str("key", key).Str("value", raw).Msgf("Invalid float value, using default %g", def)
		return def
	}
	return value
}

func getBool(v *viper.Viper, key string) bool {
	raw := strings.TrimSpace(v.GetString(key))
	value, err := strconv.ParseBool(raw)
	if err != nil {
		def, _ := strconv.ParseBool(defaultString(key))
		log.Warn().Str("key", key).Str("value", raw).Msgf("Invalid boolean value, using default %t", def)
		return def
	}
	return value
}
