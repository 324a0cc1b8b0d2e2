// Package metrics defines the Prometheus metric collectors used across the
// benchmark and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the benchmark.
type Metrics struct {
	DocsProcessedTotal   *prometheus.CounterVec
	DocsSkippedTotal     *prometheus.CounterVec
	TrialDuration        *prometheus.HistogramVec
	TrialsTotal          *prometheus.CounterVec
	VocabularySize       prometheus.Gauge
	MatrixRows           prometheus.Gauge
	CollectiveBytesTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		DocsProcessedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bow_docs_processed_total",
				Help: "Documents tokenized and counted, by execution mode.",
			},
			[]string{"mode"},
		),
		DocsSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bow_docs_skipped_total",
				Help: "Documents skipped because they could not be read, by execution mode.",
			},
			[]string{"mode"},
		),
		TrialDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bow_trial_duration_seconds",
				Help:    "Wall time per trial, by execution mode.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
			[]string{"mode"},
		),
		TrialsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bow_trials_total",
				Help: "Completed trials by execution mode and outcome (ok, empty_result).",
			},
			[]string{"mode", "outcome"},
		),
		VocabularySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "bow_vocabulary_size",
				Help: "Number of distinct terms in the last synchronized vocabulary.",
			},
		),
		MatrixRows: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "bow_matrix_rows",
				Help: "Number of rows in the last assembled matrix.",
			},
		),
		CollectiveBytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bow_collective_bytes_total",
				Help: "Payload bytes contributed to collective exchanges, by phase (vocabulary, indices, values).",
			},
			[]string{"phase"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.DocsProcessedTotal,
		m.DocsSkippedTotal,
		m.TrialDuration,
		m.TrialsTotal,
		m.VocabularySize,
		m.MatrixRows,
		m.CollectiveBytesTotal,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
