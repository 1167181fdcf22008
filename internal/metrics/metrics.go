// Package metrics provides Prometheus metrics for search outcomes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/productsearch/internal/core/domain"
	"github.com/custodia-labs/productsearch/internal/core/ports/driven"
)

// Ensure Metrics implements the interface.
var _ driven.SearchMetrics = (*Metrics)(nil)

// SearchBuckets covers a local backend answering in milliseconds up to
// the default 30s client timeout.
var SearchBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// Metrics records search outcomes in its own registry.
type Metrics struct {
	registry *prometheus.Registry

	// SearchesTotal counts searches by outcome.
	SearchesTotal *prometheus.CounterVec

	// SearchDuration records backend round-trip time in seconds.
	SearchDuration prometheus.Histogram
}

// New creates the metrics and registers them with a fresh registry
// alongside the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "productsearch_searches_total",
				Help: "Searches by outcome",
			},
			[]string{"outcome"},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "productsearch_search_duration_seconds",
				Help:    "Search API round-trip time",
				Buckets: SearchBuckets,
			},
		),
	}

	m.registry.MustRegister(
		m.SearchesTotal,
		m.SearchDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSearch records one search. Rejected searches never reached the
// backend, so they are counted without a duration.
func (m *Metrics) ObserveSearch(state domain.OutcomeState, elapsed time.Duration) {
	m.SearchesTotal.WithLabelValues(state.String()).Inc()
	if state != domain.OutcomeRejected {
		m.SearchDuration.Observe(elapsed.Seconds())
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
