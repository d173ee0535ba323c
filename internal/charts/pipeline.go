package charts

import (
	"errors"
	"fmt"
	"time"

	"realty/internal/dataset"
	"realty/internal/metrics"
	"realty/internal/model"

	"github.com/rs/zerolog/log"
)

// Chart keys. Every key is present in the output of Assemble.
const (
	KeyMapSector        = "map_sector"
	KeyScatterAreaPrice = "scatter_area_price"
	KeyBoxBHKPrice      = "box_bhk_price"
	KeyPieBHK           = "pie_bhk"
	KeyHistPriceType    = "hist_price_type"
	KeyHistPricePSF     = "hist_price_psf"
	KeyBarSectorPSF     = "bar_sector_psf"
	KeyViolinBHKPSF     = "violin_bhk_psf"
	KeyScatterAreaPSF   = "scatter_area_psf"
	KeyScatterLuxuryPSF = "scatter_luxury_psf"
	KeyHeatmapCorr      = "heatmap_corr"
)

// Options tune the chart builders
type Options struct {
	// SampleSize caps the rows drawn by scatter charts
	SampleSize int
	Seed       int64
	// ClipQuantile caps outlier-sensitive series before plotting
	ClipQuantile     float64
	TopSectors       int
	MaxBHK           float64
	PlotlyCDNVersion string
}

// DefaultOptions returns the standard dashboard settings
func DefaultOptions() Options {
	return Options{
		SampleSize:       6000,
		Seed:             42,
		ClipQuantile:     0.99,
		TopSectors:       15,
		MaxBHK:           8,
		PlotlyCDNVersion: "2.32.0",
	}
}

// Input is everything the chart battery draws from
type Input struct {
	// Data is the primary listing dataset
	Data *dataset.Canonical
	// Sectors is the per-sector summary, nil when unavailable
	Sectors []model.SectorAggregate
	// Corr is a precomputed correlation matrix, nil to compute one from Data
	Corr *dataset.CorrMatrix
}

type builder struct {
	key   string
	title string
	build func(p *Pipeline, in Input) (*Figure, error)
}

var battery = []builder{
	{KeyMapSector, "Average Price per Sqft by Sector", buildMapSector},
	{KeyScatterAreaPrice, "Built-up Area vs Price", buildScatterAreaPrice},
	{KeyBoxBHKPrice, "BHK-wise Price Distribution", buildBoxBHKPrice},
	{KeyPieBHK, "Bedroom Distribution", buildPieBHK},
	{KeyHistPriceType, "Price Distribution by Property Type", buildHistPriceType},
	{KeyHistPricePSF, "Price per Sqft Distribution", buildHistPricePSF},
	{KeyBarSectorPSF, "Top Sectors by Avg Price per Sqft", buildBarSectorPSF},
	{KeyViolinBHKPSF, "Price per Sqft by BHK (Violin)", buildViolinBHKPSF},
	{KeyScatterAreaPSF, "Built-up Area vs Price per Sqft", buildScatterAreaPSF},
	{KeyScatterLuxuryPSF, "Luxury Score vs Price per Sqft", buildScatterLuxuryPSF},
	{KeyHeatmapCorr, "Feature Correlation Heatmap", buildHeatmapCorr},
}

// Keys returns every chart key in display order
func Keys() []string {
	keys := make([]string, len(battery))
	for i, b := range battery {
		keys[i] = b.key
	}
	return keys
}

// Pipeline runs the chart battery
type Pipeline struct {
	opts    Options
	metrics *metrics.Metrics
}

// NewPipeline creates a pipeline. Zero option values take the defaults.
func NewPipeline(opts Options, m *metrics.Metrics) *Pipeline {
	def := DefaultOptions()
	if opts.SampleSize <= 0 {
		opts.SampleSize = def.SampleSize
	}
	if opts.ClipQuantile <= 0 || opts.ClipQuantile > 1 {
		opts.ClipQuantile = def.ClipQuantile
	}
	if opts.TopSectors <= 0 {
		opts.TopSectors = def.TopSectors
	}
	if opts.MaxBHK <= 0 {
		opts.MaxBHK = def.MaxBHK
	}
	if opts.PlotlyCDNVersion == "" {
		opts.PlotlyCDNVersion = def.PlotlyCDNVersion
	}
	return &Pipeline{opts: opts, metrics: m}
}

// Options returns the effective options
func (p *Pipeline) Options() Options {
	return p.opts
}

// Assemble runs every builder. Each key maps to a chart or to a
// placeholder explaining why the chart is missing.
func (p *Pipeline) Assemble(in Input) map[string]model.ChartArtifact {
	start := time.Now()
	if in.Data == nil {
		in.Data = dataset.NewCanonical(nil)
	}

	out := make(map[string]model.ChartArtifact, len(battery))
	placeholders := 0
	for _, b := range battery {
		art := p.artifact(b, in)
		if art.IsPlaceholder() {
			placeholders++
		}
		out[b.key] = art
	}

	took := time.Since(start)
	p.metrics.ObserveAssembly(took)
	log.Info().
		Int("rows", in.Data.Len()).
		Int("sectors", len(in.Sectors)).
		Int("charts", len(out)-placeholders).
		Int("placeholders", placeholders).
		Dur("took", took).
		Msg("Figures assembled")
	return out
}

func (p *Pipeline) artifact(b builder, in Input) model.ChartArtifact {
	art := model.ChartArtifact{Key: b.key, Title: b.title}

	fig, err := p.run(b, in)
	if err == nil && fig == nil {
		err = unavailable("No data for %s.", b.title)
	}
	if err == nil {
		html, renderErr := renderFigure(b.key, fig, p.opts.PlotlyCDNVersion)
		if renderErr == nil {
			art.Figure = fig
			art.HTML = html
			return art
		}
		err = renderErr
	}

	var u *Unavailable
	reason := err.Error()
	if !errors.As(err, &u) {
		log.Warn().Err(err).Str("chart", b.key).Msg("Chart builder failed")
		reason = fmt.Sprintf("%s could not be rendered.", b.title)
	}
	if reason == "" {
		reason = fmt.Sprintf("%s is unavailable.", b.title)
	}
	log.Debug().Str("chart", b.key).Str("reason", reason).Msg("Chart placeholder")
	p.metrics.ObservePlaceholder(b.key)

	art.Placeholder = reason
	art.HTML = renderPlaceholder(reason)
	return art
}

// run calls a builder, turning a panic into an error
func (p *Pipeline) run(b builder, in Input) (fig *Figure, err error) {
	defer func() {
		if r := recover(); r != nil {
			fig = nil
			err = fmt.Errorf("panic in %s: %v", b.key, r)
		}
	}()
	return b.build(p, in)
}
