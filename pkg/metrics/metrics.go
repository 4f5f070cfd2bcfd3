package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup surfaces.
const (
	SurfaceREST    = "rest"
	SurfaceGraphQL = "graphql"
)

// Metrics records request latency and lookup outcomes.
type Metrics struct {
	duration *prometheus.HistogramVec
	lookups  *prometheus.CounterVec
}

// New registers the service metrics on the provided registerer. A nil registerer yields a
// no-op recorder.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plu_lookups_total",
		Help: "Item lookups by surface and outcome.",
	}, []string{"surface", "outcome"})
	reg.MustRegister(duration, lookups)
	return &Metrics{
		duration: duration,
		lookups:  lookups,
	}
}

// ObserveRequest records the duration of one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(duration.Seconds())
}

// IncLookup counts one lookup. outcome is "ok" or a lower-cased error code.
func (m *Metrics) IncLookup(surface, outcome string) {
	if m == nil || m.lookups == nil {
		return
	}
	m.lookups.WithLabelValues(normalizeLabel(surface), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
