// Package telemetry holds the Prometheus metrics and OpenTelemetry tracing
// shared by the build, the dev server and publish.
//
// Metrics are registered on construction:
//
//	reg := prometheus.NewRegistry()
//	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	http.Handle("/metrics", telemetry.MetricsHandler(reg))
//
// A nil *Metrics is valid and records nothing. Tracing uses the global
// OpenTelemetry provider; InitTracing installs one that exports to stdout
// or an OTLP/HTTP collector.
package telemetry
