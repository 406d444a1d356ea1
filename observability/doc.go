// Package observability provides OpenTelemetry-based metrics extensions
// for conductor. The MetricsExtension implements lifecycle hooks to
// record system-wide counters for job submission, success, failure, and
// cancellation events.
//
// For per-call tracing and metrics on the remote client, see the
// middleware package: middleware.Tracing() and middleware.Metrics().
package observability
