package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records request and domain counters. All methods are safe on a nil
// receiver so callers can skip wiring in tests.
type Metrics struct {
	registry *prometheus.Registry

	httpDuration *prometheus.HistogramVec
	appointments *prometheus.CounterVec
	votes        *prometheus.CounterVec
	reactions    *prometheus.CounterVec
	logins       *prometheus.CounterVec
}

// New registers the platform metrics on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	appointments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "appointments_total",
		Help: "Appointment lifecycle events by action.",
	}, []string{"action"})
	votes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "center_votes_total",
		Help: "Service center votes by outcome.",
	}, []string{"outcome"})
	reactions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "post_reactions_total",
		Help: "Forum post reaction events by action.",
	}, []string{"action"})
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_attempts_total",
		Help: "Authentication attempts by operation and result.",
	}, []string{"operation", "result"})

	registry.MustRegister(httpDuration, appointments, votes, reactions, logins)

	return &Metrics{
		registry:     registry,
		httpDuration: httpDuration,
		appointments: appointments,
		votes:        votes,
		reactions:    reactions,
		logins:       logins,
	}
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil || m.httpDuration == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, normalizeLabel(route), status).Observe(duration.Seconds())
}

// IncAppointment counts an appointment lifecycle event.
func (m *Metrics) IncAppointment(action string) {
	if m == nil || m.appointments == nil {
		return
	}
	m.appointments.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncVote counts a center vote by outcome (created or updated).
func (m *Metrics) IncVote(outcome string) {
	if m == nil || m.votes == nil {
		return
	}
	m.votes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncReaction counts a post reaction event.
func (m *Metrics) IncReaction(action string) {
	if m == nil || m.reactions == nil {
		return
	}
	m.reactions.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncAuthAttempt counts a login or register attempt.
func (m *Metrics) IncAuthAttempt(operation, result string) {
	if m == nil || m.logins == nil {
		return
	}
	m.logins.WithLabelValues(normalizeLabel(operation), normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
