package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	QuotesTotal   *prometheus.CounterVec
	QuoteDuration *prometheus.HistogramVec
	ConfigDefects *prometheus.CounterVec
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		QuotesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipquote_quotes_total",
				Help: "Total quote computations by outcome",
			},
			[]string{"outcome"},
		),
		QuoteDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shipquote_quote_duration_seconds",
				Help:    "Quote computation duration in seconds by outcome",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		ConfigDefects: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shipquote_config_defects_total",
				Help: "Configuration defects detected while quoting, by kind",
			},
			[]string{"kind"},
		),
	}
}

// RecordQuote records one quote computation.
func (m *Metrics) RecordQuote(outcome string, duration float64) {
	m.QuotesTotal.WithLabelValues(outcome).Inc()
	m.QuoteDuration.WithLabelValues(outcome).Observe(duration)
}

// RecordConfigDefect records a detected configuration defect.
func (m *Metrics) RecordConfigDefect(kind string) {
	m.ConfigDefects.WithLabelValues(kind).Inc()
}
