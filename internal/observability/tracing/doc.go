// Package tracing wires OpenTelemetry into the service: provider setup with an
// optional OTLP/HTTP exporter, a server-span middleware, and the shared tracer
// used for spans around object store reads and writes.
package tracing
