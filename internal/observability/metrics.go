package observability

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/resume-builder/internal/types"
)

const namespace = "resume_builder"

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	service  string
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	resumeScore     prometheus.Histogram
	atsOverall      *prometheus.HistogramVec
	missingKeywords *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics(service string) *Metrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	m := &Metrics{
		service:  service,
		registry: registry,
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests processed.",
			},
			[]string{"service", "method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),
		requestInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Subsystem:   "http",
				Name:        "in_flight_requests",
				Help:        "Number of in-flight HTTP requests.",
				ConstLabels: constLabels,
			},
		),
		resumeScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Subsystem:   "scoring",
				Name:        "resume_score",
				Help:        "Distribution of structural resume scores (0-100).",
				Buckets:     prometheus.LinearBuckets(10, 10, 10),
				ConstLabels: constLabels,
			},
		),
		atsOverall: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Subsystem:   "ats",
				Name:        "overall_score",
				Help:        "Distribution of overall ATS scores (0-100).",
				Buckets:     prometheus.LinearBuckets(10, 10, 10),
				ConstLabels: constLabels,
			},
			[]string{"source"},
		),
		missingKeywords: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "ats",
				Name:        "missing_keywords_total",
				Help:        "Total job description keywords not found in analyzed resumes.",
				ConstLabels: constLabels,
			},
			[]string{"source"},
		),
	}

	registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.requestInFlight,
		m.resumeScore,
		m.atsOverall,
		m.missingKeywords,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveResumeScore records a structural score.
func (m *Metrics) ObserveResumeScore(score types.ResumeScore) {
	m.resumeScore.Observe(float64(score.Total))
}

// ObserveATS records an ATS report. source is "text" or "stored".
func (m *Metrics) ObserveATS(source string, score types.ATSScore) {
	if source == "" {
		source = "unknown"
	}
	m.atsOverall.WithLabelValues(source).Observe(score.Overall)
	if n := len(score.MissingKeywords); n > 0 {
		m.missingKeywords.WithLabelValues(source).Add(float64(n))
	}
}

// Middleware records request count, duration and in-flight requests.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			m.service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(m.service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses resource ids so label cardinality stays bounded.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/resumes/"):
		rest := strings.TrimPrefix(path, "/resumes/")
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/resumes/{id}" + rest[i:]
		}
		return "/resumes/{id}"
	case strings.HasPrefix(path, "/templates/"):
		return "/templates/{id}"
	default:
		return path
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

