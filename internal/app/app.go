package app

import (
	"fmt"

	"realty/internal/charts"
	"realty/internal/config"
	"realty/internal/metrics"
	"realty/internal/repository"
	"realty/internal/schema"
	"realty/internal/service"
	"realty/internal/wordcloud"

	"github.com/rs/zerolog/log"
)

// App wires the services shared by the server and the CLI
type App struct {
	Config      *config.Config
	Metrics     *metrics.Metrics
	Schema      *schema.Registry
	Locator     *repository.Locator
	Predictions *service.PredictionService
	Analytics   *service.AnalyticsService

	closers []func() error
}

// New builds every service. Missing or incompatible model artifacts are
// returned as errors and must stop the process.
func New(cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
	}

	a.Schema = schema.NewRegistry(cfg.Paths.ColumnsPath, cfg.Paths.ExamplesPath)
	if err := a.Schema.Load(); err != nil {
		return nil, err
	}
	if err := a.Schema.CheckCompatibility(); err != nil {
		return nil, err
	}
	log.Info().Msg("Schema is compatible with the form")

	predictor, err := NewPredictor(cfg)
	if err != nil {
		return nil, err
	}

	var primary service.PrimarySource
	if cfg.PostgreSQL.Enabled {
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
			cfg.PostgreSQL.Table,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, repo.Close)
		primary = repo
		log.Info().Str("table", cfg.PostgreSQL.Table).Msg("Primary dataset served from PostgreSQL")
	}

	a.Locator = repository.NewLocator(cfg.Paths.ExportDirs, cfg.Paths.DatasetDir, a.Metrics)
	log.Info().Strs("dirs", a.Locator.Dirs()).Msg("Dataset candidate directories")

	a.Predictions = service.NewPredictionService(service.NewFormValidator(a.Schema), predictor, a.Metrics)
	a.Analytics = service.NewAnalyticsService(
		repository.NewFileStore(a.Locator),
		primary,
		charts.NewPipeline(service.ChartOptions(cfg.Analytics), a.Metrics),
		wordcloud.NewRenderer(cfg.WordCloud.Width, cfg.WordCloud.Height, cfg.WordCloud.MaxWords),
		cfg.Paths,
		a.Metrics,
	)
	return a, nil
}

// NewPredictor selects the inference backend. The local model is loaded
// eagerly so that a missing artifact is reported at startup.
func NewPredictor(cfg *config.Config) (service.Predictor, error) {
	switch cfg.Model.Backend {
	case "remote":
		log.Info().Str("url", cfg.Model.RemoteURL).Msg("Using remote model server")
		return service.NewRemoteModelClient(&cfg.Model), nil
	default:
		store := service.NewModelStore(cfg.Paths.ModelPath)
		if err := store.Load(); err != nil {
			return nil, err
		}
		return store, nil
	}
}

// Close releases database connections
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
