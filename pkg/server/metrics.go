package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the runtime.
type Metrics struct {
	ActiveSessions prometheus.Gauge
	SessionsTotal  prometheus.Counter
	EventsTotal    *prometheus.CounterVec
	EmissionsTotal prometheus.Counter
	PatchesSent    prometheus.Counter
	EventDuration  prometheus.Histogram
	WSErrors       *prometheus.CounterVec
}

// NewMetrics registers the instruments with reg. Pass
// prometheus.DefaultRegisterer outside of tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "hooks",
			Name:      "active_sessions",
			Help:      "Number of live WebSocket sessions.",
		}),
		SessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hooks",
			Name:      "sessions_total",
			Help:      "Total sessions created since start.",
		}),
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hooks",
			Name:      "events_total",
			Help:      "Client events received, by event name.",
		}, []string{"name"}),
		EmissionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hooks",
			Name:      "emissions_total",
			Help:      "Debounced and derived value emissions.",
		}),
		PatchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hooks",
			Name:      "patches_sent_total",
			Help:      "State patches pushed to clients.",
		}),
		EventDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hooks",
			Name:      "event_duration_seconds",
			Help:      "Event dispatch duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
		WSErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hooks",
			Name:      "websocket_errors_total",
			Help:      "WebSocket errors by type.",
		}, []string{"type"}),
	}
}
