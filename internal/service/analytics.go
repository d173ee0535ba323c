package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"realty/internal/charts"
	"realty/internal/config"
	"realty/internal/dataset"
	"realty/internal/metrics"
	"realty/internal/model"
	"realty/internal/repository"
	"realty/internal/wordcloud"

	"github.com/rs/zerolog/log"
)

// PrimarySource supplies the primary listing dataset from somewhere other
// than the dataset files, such as a database
type PrimarySource interface {
	LoadPrimary(ctx context.Context) (*dataset.Frame, error)
}

// AnalyticsService builds the analytics dashboard
type AnalyticsService struct {
	files    *repository.FileStore
	primary  PrimarySource
	pipeline *charts.Pipeline
	cloud    *wordcloud.Renderer
	paths    config.PathsConfig
	metrics  *metrics.Metrics
}

// NewAnalyticsService creates a new analytics service. primary may be nil,
// in which case the primary dataset is read from files.
func NewAnalyticsService(
	files *repository.FileStore,
	primary PrimarySource,
	pipeline *charts.Pipeline,
	cloud *wordcloud.Renderer,
	paths config.PathsConfig,
	m *metrics.Metrics,
) *AnalyticsService {
	return &AnalyticsService{
		files:    files,
		primary:  primary,
		pipeline: pipeline,
		cloud:    cloud,
		paths:    paths,
		metrics:  m,
	}
}

// ChartOptions maps the analytics config onto chart options
func ChartOptions(cfg config.AnalyticsConfig) charts.Options {
	return charts.Options{
		SampleSize:       cfg.SampleSize,
		Seed:             cfg.Seed,
		ClipQuantile:     cfg.ClipQuantile,
		TopSectors:       cfg.TopSectors,
		MaxBHK:           cfg.MaxBHK,
		PlotlyCDNVersion: cfg.PlotlyCDNVersion,
	}
}

// Build assembles every chart and the word cloud of the selected sector.
// When the primary dataset cannot be located the figures are empty but
// the sector list and word cloud are still produced.
func (s *AnalyticsService) Build(ctx context.Context, sector string) (*model.AnalyticsResponse, error) {
	startTime := time.Now()
	resp := &model.AnalyticsResponse{Figures: map[string]model.ChartArtifact{}}

	data, err := s.loadPrimary(ctx)
	switch {
	case err == nil:
		sectors := s.sectorAggregates(ctx, data)
		resp.Figures = s.pipeline.Assemble(charts.Input{
			Data:    data,
			Sectors: sectors,
			Corr:    s.loadCorrelation(ctx),
		})
		resp.Rows = data.Len()
		resp.SectorRows = len(sectors)
	case repository.IsNotFound(err):
		log.Warn().Err(err).Msg("Primary dataset not found, skipping figures")
		data = nil
	default:
		return nil, fmt.Errorf("failed to load primary dataset: %w", err)
	}

	textMap := s.loadTextMap(ctx)
	resp.Sectors = SectorOptions(textMap, data)
	resp.SelectedSector = strings.TrimSpace(sector)
	if resp.SelectedSector == "" && len(resp.Sectors) > 0 {
		resp.SelectedSector = resp.Sectors[0]
	}

	img, err := s.cloud.RenderBase64(textMap[resp.SelectedSector])
	if err != nil {
		log.Warn().Err(err).Str("sector", resp.SelectedSector).Msg("Word cloud rendering failed")
	} else {
		resp.WordCloud = img
	}

	log.Info().
		Str("sector", resp.SelectedSector).
		Int("figures", len(resp.Figures)).
		Int("rows", resp.Rows).
		Dur("took", time.Since(startTime)).
		Msg("Analytics built")
	return resp, nil
}

// SectorOptions lists the sectors a user can pick: the keys of the text
// map, or the distinct sectors of the dataset when the map is empty
func SectorOptions(textMap map[string]string, data *dataset.Canonical) []string {
	options := make([]string, 0, len(textMap))
	for k := range textMap {
		options = append(options, k)
	}
	if len(options) == 0 && data != nil {
		return data.DistinctSectors()
	}
	sort.Strings(options)
	return options
}

func (s *AnalyticsService) loadPrimary(ctx context.Context) (*dataset.Canonical, error) {
	var (
		frame *dataset.Frame
		err   error
	)
	if s.primary != nil {
		frame, err = s.primary.LoadPrimary(ctx)
	} else {
		frame, err = s.files.LoadTable(ctx, s.paths.PrimaryFile)
	}
	if err != nil {
		return nil, err
	}
	data := dataset.NewCanonical(frame)
	if missing := data.Missing(dataset.Roles...); len(missing) > 0 {
		log.Debug().Interface("roles", missing).Msg("Primary dataset lacks some roles")
	}
	return data, nil
}

// sectorAggregates prefers the precomputed summary and falls back to
// deriving one from the coordinate table
func (s *AnalyticsService) sectorAggregates(ctx context.Context, data *dataset.Canonical) []model.SectorAggregate {
	frame, err := s.files.LoadTable(ctx, s.paths.SectorFile)
	if err == nil {
		s.metrics.ObserveAggregateSource(metrics.AggregatePrecomputed)
		return AggregatesFromFrame(dataset.NewCanonical(frame))
	}
	if !repository.IsNotFound(err) {
		log.Warn().Err(err).Msg("Failed to read sector summary, deriving it instead")
	}

	raw, err := s.files.LoadTable(ctx, s.paths.LatLongFile)
	if err != nil {
		log.Warn().Err(err).Msg("No sector coordinates, sector map disabled")
		s.metrics.ObserveAggregateSource(metrics.AggregateUnavailable)
		return nil
	}
	out := BuildSectorAggregates(data, raw)
	if out == nil {
		s.metrics.ObserveAggregateSource(metrics.AggregateUnavailable)
		return nil
	}
	s.metrics.ObserveAggregateSource(metrics.AggregateFallback)
	return out
}

func (s *AnalyticsService) loadCorrelation(ctx context.Context) *dataset.CorrMatrix {
	frame, err := s.files.LoadTable(ctx, s.paths.CorrelationFile)
	if err != nil {
		if !repository.IsNotFound(err) {
			log.Warn().Err(err).Msg("Failed to read correlation matrix")
		}
		return nil
	}
	m, err := dataset.MatrixFromFrame(frame)
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring malformed correlation matrix")
		return nil
	}
	return m
}

func (s *AnalyticsService) loadTextMap(ctx context.Context) map[string]string {
	m, err := s.files.LoadTextMap(ctx, s.paths.FeatureTextFile)
	if err != nil {
		log.Warn().Err(err).Msg("Sector feature text unavailable")
		return map[string]string{}
	}
	return m
}
