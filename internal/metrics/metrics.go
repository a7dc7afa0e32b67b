// Package metrics holds the Prometheus collectors of the ledger service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the ledger collectors so they can be registered on any
// registry, which keeps tests independent of the global one.
type Metrics struct {
	Writes           *prometheus.CounterVec
	CoercionDefaults *prometheus.CounterVec
	ReaderDuration   prometheus.Histogram
	DatabaseUp       prometheus.Gauge
}

// New creates the collectors and registers them on reg when it is not nil
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Writes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_writes_total",
				Help: "Record writer calls by entity and outcome",
			},
			[]string{"entity", "outcome"},
		),
		CoercionDefaults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_coercion_defaults_total",
				Help: "Input fields replaced by a default value during coercion",
			},
			[]string{"entity", "field"},
		),
		ReaderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_reader_query_duration_seconds",
				Help:    "Duration of account transaction lookups",
				Buckets: prometheus.DefBuckets,
			},
		),
		DatabaseUp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_database_up",
				Help: "1 when the last connectivity check was healthy",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Writes, m.CoercionDefaults, m.ReaderDuration, m.DatabaseUp)
	}
	return m
}
