// Package telemetry provides observability for the copy engine.
//
// It contains two goclone.Observer implementations: PrometheusObserver,
// which exports session counts, copied-object counts, identity map hits and
// session durations as Prometheus metrics, and OTelObserver, which records
// the same through OpenTelemetry instruments. TraceSession wraps a copy
// invocation in an OpenTelemetry span.
package telemetry
