package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/docsite/internal/errors"
)

const namespace = "docsite"

// MetricsConfig configures NewMetrics.
type MetricsConfig struct {
	// Registry receives the collectors. Defaults to
	// prometheus.DefaultRegisterer; tests and the CLI pass their own.
	Registry prometheus.Registerer

	// ConstLabels are attached to every series.
	ConstLabels prometheus.Labels
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*MetricsConfig)

func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// Metrics records docsite activity. A nil *Metrics records nothing, so
// packages take one without checking whether metrics are enabled.
type Metrics struct {
	pagesRendered   *prometheus.CounterVec
	renderDuration  prometheus.Histogram
	contentLoads    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	reloadClients   prometheus.Gauge
	reloadsSent     *prometheus.CounterVec
	objectsUploaded prometheus.Counter
}

// NewMetrics creates the collectors and registers them.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := MetricsConfig{Registry: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&cfg)
	}
	f := promauto.With(cfg.Registry)

	counter := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help, ConstLabels: cfg.ConstLabels}
	}
	histogram := func(name, help string) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: cfg.ConstLabels,
			Buckets:     prometheus.DefBuckets,
		}
	}

	return &Metrics{
		pagesRendered:   f.NewCounterVec(counter("pages_rendered_total", "Pages rendered, by outcome."), []string{"status"}),
		renderDuration:  f.NewHistogram(histogram("page_render_duration_seconds", "Time to render one page.")),
		contentLoads:    f.NewCounterVec(counter("content_loads_total", "Docs directory loads, by outcome."), []string{"status"}),
		httpRequests:    f.NewCounterVec(counter("http_requests_total", "Dev server requests."), []string{"route", "method", "code"}),
		httpDuration:    f.NewHistogramVec(histogram("http_request_duration_seconds", "Dev server request latency."), []string{"route", "method"}),
		reloadClients:   f.NewGauge(prometheus.GaugeOpts(counter("reload_clients", "Connected live reload browsers."))),
		reloadsSent:     f.NewCounterVec(counter("reload_messages_total", "Live reload messages sent, by type."), []string{"type"}),
		objectsUploaded: f.NewCounter(counter("objects_uploaded_total", "Objects uploaded by publish.")),
	}
}

// ObserveRender records one page render.
func (m *Metrics) ObserveRender(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.renderDuration.Observe(d.Seconds())
	m.pagesRendered.WithLabelValues(status(err)).Inc()
}

// ObserveLoad records one docs directory load.
func (m *Metrics) ObserveLoad(err error) {
	if m == nil {
		return
	}
	m.contentLoads.WithLabelValues(status(err)).Inc()
}

// SetReloadClients records the number of live reload clients.
func (m *Metrics) SetReloadClients(n int) {
	if m == nil {
		return
	}
	m.reloadClients.Set(float64(n))
}

// RecordReload records a broadcast live reload message.
func (m *Metrics) RecordReload(kind string) {
	if m == nil {
		return
	}
	m.reloadsSent.WithLabelValues(kind).Inc()
}

// RecordUpload records an uploaded object.
func (m *Metrics) RecordUpload() {
	if m == nil {
		return
	}
	m.objectsUploaded.Inc()
}

// Middleware records request counts and durations labelled with the chi
// route pattern, which keeps label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		m.httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(code)).Inc()
	})
}

// status labels an outcome by error code, so labels stay low-cardinality.
func status(err error) string {
	if err == nil {
		return "ok"
	}
	if code := errors.Code(err); code != "" {
		return code
	}
	return "error"
}
