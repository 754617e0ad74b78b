// Package metrics exposes Prometheus instrumentation: an HTTP middleware that
// records request counts and latencies by route pattern, plus counters for
// the business events the marketing team watches.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	contactSubmissions  prometheus.Counter
	contactTransitions  *prometheus.CounterVec
	testimonialsCreated prometheus.Counter
	testimonialToggles  *prometheus.CounterVec
	statsUpdates        prometheus.Counter
}

// New builds a Metrics on a fresh registry, including Go runtime and process
// collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status_code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		contactSubmissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of accepted contact form submissions",
		}),
		contactTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_status_transitions_total",
			Help: "Contact submission status changes by target status",
		}, []string{"status"}),
		testimonialsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "testimonials_created_total",
			Help: "Total number of testimonials created",
		}),
		testimonialToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "testimonial_toggles_total",
			Help: "Testimonial active-flag toggles by resulting state",
		}, []string{"active"}),
		statsUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "school_stats_updates_total",
			Help: "Total number of school statistics updates",
		}),
	}
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.requests, m.duration,
		m.contactSubmissions, m.contactTransitions,
		m.testimonialsCreated, m.testimonialToggles,
		m.statsUpdates,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry (tests gather from it).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Middleware records request count and duration. The route label is chi's
// matched pattern, so ids in the path do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// ContactSubmitted counts an accepted contact submission.
func (m *Metrics) ContactSubmitted() {
	if m != nil {
		m.contactSubmissions.Inc()
	}
}

// ContactStatusChanged counts a status transition.
func (m *Metrics) ContactStatusChanged(status string) {
	if m != nil {
		m.contactTransitions.WithLabelValues(status).Inc()
	}
}

// TestimonialCreated counts a created testimonial.
func (m *Metrics) TestimonialCreated() {
	if m != nil {
		m.testimonialsCreated.Inc()
	}
}

// TestimonialToggled counts a toggle by its resulting state.
func (m *Metrics) TestimonialToggled(active bool) {
	if m != nil {
		m.testimonialToggles.WithLabelValues(strconv.FormatBool(active)).Inc()
	}
}

// StatsUpdated counts a stats update.
func (m *Metrics) StatsUpdated() {
	if m != nil {
		m.statsUpdates.Inc()
	}
}
