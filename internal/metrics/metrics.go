package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "realty"

// Prediction outcomes
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Sector aggregate sources
const (
	AggregatePrecomputed = "precomputed"
	AggregateFallback    = "fallback"
	AggregateUnavailable = "unavailable"
)

// Metrics holds the pipeline collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	predictions       *prometheus.CounterVec
	sourceLookups     *prometheus.CounterVec
	aggregateSource   *prometheus.CounterVec
	chartPlaceholders *prometheus.CounterVec
	assembleDuration  prometheus.Histogram
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Price prediction requests by outcome.",
		}, []string{"outcome"}),
		sourceLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "data_source_lookups_total",
			Help:      "Dataset resolution attempts by logical name and result.",
		}, []string{"name", "result"}),
		aggregateSource: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sector_aggregate_total",
			Help:      "Where the per-sector summary came from.",
		}, []string{"source"}),
		chartPlaceholders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_placeholders_total",
			Help:      "Charts rendered as placeholders, by chart key.",
		}, []string{"chart"}),
		assembleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "figure_assembly_seconds",
			Help:      "Time spent assembling the chart battery.",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.predictions,
		m.sourceLookups,
		m.aggregateSource,
		m.chartPlaceholders,
		m.assembleDuration,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObservePrediction(outcome string) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveLookup(name string, found bool) {
	if m == nil {
		return
	}
	result := "found"
	if !found {
		result = "missing"
	}
	m.sourceLookups.WithLabelValues(name, result).Inc()
}

func (m *Metrics) ObserveAggregateSource(source string) {
	if m == nil {
		return
	}
	m.aggregateSource.WithLabelValues(source).Inc()
}

func (m *Metrics) ObservePlaceholder(chart string) {
	if m == nil {
		return
	}
	m.chartPlaceholders.WithLabelValues(chart).Inc()
}

func (m *Metrics) ObserveAssembly(d time.Duration) {
	if m == nil {
		return
	}
	m.assembleDuration.Observe(d.Seconds())
}
