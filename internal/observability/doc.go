// Package observability groups the logging, metrics and tracing support of the
// service.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus collectors and recorders
//   - tracing: OpenTelemetry provider, middleware and tracer
package observability
