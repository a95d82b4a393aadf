package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics of the key manager. Each instance has
// its own registry so several managers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	RotationsTotal        *prometheus.CounterVec
	RotationPeriods       prometheus.Histogram
	KeySets               *prometheus.GaugeVec
	StreamsOpenedTotal    prometheus.Counter
	TagsRecognisedTotal   prometheus.Counter
	TagsUnrecognisedTotal prometheus.Counter
	StoreOperationsTotal  *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RotationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transportkeys_rotations_total",
				Help: "Key sets moved to a later time period",
			},
			[]string{"variant"},
		),

		RotationPeriods: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transportkeys_rotation_periods",
				Help:    "Number of periods elapsed per rotation",
				Buckets: []float64{1, 2, 3, 5, 10, 30, 100},
			},
		),

		KeySets: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "transportkeys_key_sets",
				Help: "Key sets currently held",
			},
			[]string{"variant"},
		),

		StreamsOpenedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "transportkeys_streams_opened_total",
				Help: "Outgoing streams allocated",
			},
		),

		TagsRecognisedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "transportkeys_tags_recognised_total",
				Help: "Incoming tags matched to a key set",
			},
		),

		TagsUnrecognisedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "transportkeys_tags_unrecognised_total",
				Help: "Incoming tags that matched no key set",
			},
		),

		StoreOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transportkeys_store_operations_total",
				Help: "Key set store operations",
			},
			[]string{"operation", "status"},
		),
	}
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler returns an HTTP handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRotation records a rotation of a key set by elapsed periods.
func (m *Metrics) RecordRotation(static bool, elapsed int64) {
	m.RotationsTotal.WithLabelValues(variant(static)).Inc()
	m.RotationPeriods.Observe(float64(elapsed))
}

// RecordStoreOperation records the outcome of a store call.
func (m *Metrics) RecordStoreOperation(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.StoreOperationsTotal.WithLabelValues(op, status).Inc()
}

// SetKeySets sets the key set gauges.
func (m *Metrics) SetKeySets(ephemeral, static int) {
	m.KeySets.WithLabelValues(variant(false)).Set(float64(ephemeral))
	m.KeySets.WithLabelValues(variant(true)).Set(float64(static))
}

func variant(static bool) string {
	if static {
		return "static"
	}
	return "ephemeral"
}
