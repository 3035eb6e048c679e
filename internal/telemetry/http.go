package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// WrapHandler traces every request through otelhttp. Request metrics need
// the chi route pattern, so install Metrics.Middleware on the router itself.
func WrapHandler(name string, next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, name)
}

// MetricsHandler serves the metrics in g. A nil g serves the default
// registry.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
