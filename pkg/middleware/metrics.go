package middleware

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arkenidar/dhtml/pkg/bind"
	"github.com/arkenidar/dhtml/pkg/demo"
	"github.com/arkenidar/dhtml/pkg/server"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "dhtml").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "dhtml",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for the demo server.
type metrics struct {
	eventsTotal    *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
	eventErrors    *prometheus.CounterVec
	sinkWrites     *prometheus.CounterVec
	activeSessions prometheus.Gauge
}

// globalMetrics is the singleton metrics instance, created on first
// call to Metrics().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "events_total",
			Help:        "Total number of demo events processed",
			ConstLabels: config.ConstLabels,
		}, []string{"demo", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "event_duration_seconds",
			Help:        "Event processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"demo"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "event_errors_total",
			Help:        "Total number of event processing errors",
			ConstLabels: config.ConstLabels,
		}, []string{"demo", "error_type"}),

		sinkWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "sink_writes_total",
			Help:        "Total number of sink writes pushed to clients",
			ConstLabels: config.ConstLabels,
		}, []string{"demo"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "active_sessions",
			Help:        "Number of active WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Metrics creates middleware that collects Prometheus metrics for demo
// events.
//
// Metrics collected:
//   - dhtml_events_total: Counter of events by demo and status
//   - dhtml_event_duration_seconds: Histogram of event processing duration
//   - dhtml_event_errors_total: Counter of event errors by demo and type
//   - dhtml_sink_writes_total: Counter of sink writes (via RecordSinkWrite)
//   - dhtml_active_sessions: Gauge of sessions (via RecordSessionStart/End)
func Metrics(opts ...MetricsOption) server.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next server.Handler) server.Handler {
		return func(ctx context.Context, ev *server.EventInfo) error {
			start := time.Now()

			err := next(ctx, ev)

			m.eventDuration.WithLabelValues(ev.Demo).Observe(time.Since(start).Seconds())

			status := "success"
			if err != nil {
				status = "error"
				m.eventErrors.WithLabelValues(ev.Demo, categorizeError(err)).Inc()
			}
			m.eventsTotal.WithLabelValues(ev.Demo, status).Inc()

			return err
		}
	}
}

// RecordSessionStart increments the active-session gauge. Wire it to
// server.Config.OnSessionStart. No-op before Metrics() has run.
func RecordSessionStart() {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	if globalMetrics != nil {
		globalMetrics.activeSessions.Inc()
	}
}

// RecordSessionEnd decrements the active-session gauge. Wire it to
// server.Config.OnSessionEnd.
func RecordSessionEnd() {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	if globalMetrics != nil {
		globalMetrics.activeSessions.Dec()
	}
}

// RecordSinkWrite counts one sink write for the demo. Wire it to
// server.Config.OnSinkWrite.
func RecordSinkWrite(demoName string) {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	if globalMetrics != nil {
		globalMetrics.sinkWrites.WithLabelValues(demoName).Inc()
	}
}

// categorizeError returns a low-cardinality category for the error.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, demo.ErrUnknownOp):
		return "unknown_op"
	case errors.Is(err, demo.ErrIndexRange):
		return "index_range"
	case errors.Is(err, bind.ErrEmptyGroup),
		errors.Is(err, bind.ErrLengthMismatch),
		errors.Is(err, bind.ErrNilCell),
		errors.Is(err, bind.ErrNilFunc):
		return "configuration"
	default:
		return "internal"
	}
}
