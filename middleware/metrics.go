package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/conductor/job"
	"github.com/xraph/conductor/remote"
)

// meterName is the instrumentation scope name for conductor metrics.
const meterName = "github.com/xraph/conductor"

// Metrics returns middleware that records per-call metrics using the
// global OTel MeterProvider. If no MeterProvider is configured, noop
// instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - conductor.remote.duration (Float64Histogram): call time in
//     seconds, with attributes: op, status ("ok", "transient", "error")
//   - conductor.remote.calls (Int64Counter): total calls, with
//     attributes: op, status
func Metrics() Middleware {
	meter := otel.Meter(meterName)
	return MetricsWithMeter(meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MetricsWithMeter(meter metric.Meter) Middleware {
	// Create instruments once at middleware construction time.
	// OTel instruments are safe for concurrent use. On error, the API
	// returns noop instruments so the middleware degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"conductor.remote.duration",
		metric.WithDescription("Duration of remote scheduling-service calls in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	calls, cErr := meter.Int64Counter(
		"conductor.remote.calls",
		metric.WithDescription("Total number of remote scheduling-service calls"),
		metric.WithUnit("{call}"),
	)
	_ = cErr // noop fallback guaranteed by OTel API contract

	return func(ctx context.Context, _ job.Handle, op Op, next Handler) error {
		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		switch {
		case err == nil:
		case remote.IsTransient(err):
			status = "transient"
		default:
			status = "error"
		}

		attrs := metric.WithAttributes(
			attribute.String("op", string(op)),
			attribute.String("status", status),
		)

		duration.Record(ctx, elapsed, attrs)
		calls.Add(ctx, 1, attrs)

		return err
	}
}
