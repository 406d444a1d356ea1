package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/conductor/hook"
	"github.com/xraph/conductor/id"
	"github.com/xraph/conductor/job"
)

// meterName is the instrumentation scope name for conductor metrics.
const meterName = "github.com/xraph/conductor/observability"

// Compile-time interface checks.
var (
	_ hook.Extension    = (*MetricsExtension)(nil)
	_ hook.JobSubmitted = (*MetricsExtension)(nil)
	_ hook.JobSucceeded = (*MetricsExtension)(nil)
	_ hook.JobFailed    = (*MetricsExtension)(nil)
	_ hook.JobCancelled = (*MetricsExtension)(nil)
)

// MetricsExtension records system-wide lifecycle metrics via OpenTelemetry.
// Register it with a hook.Registry to automatically track submission
// counts, success and failure rates, and cancellations.
type MetricsExtension struct {
	jobSubmitted metric.Int64Counter
	jobSucceeded metric.Int64Counter
	jobFailed    metric.Int64Counter
	jobCancelled metric.Int64Counter
}

// NewMetricsExtension creates a MetricsExtension using the global OTel
// MeterProvider. If none is configured, noop instruments are used.
func NewMetricsExtension() *MetricsExtension {
	return NewMetricsExtensionWithMeter(otel.Meter(meterName))
}

// NewMetricsExtensionWithMeter creates a MetricsExtension with the
// provided meter. Use this variant to inject a specific MeterProvider
// for testing.
func NewMetricsExtensionWithMeter(meter metric.Meter) *MetricsExtension {
	// Instruments are created once at construction time. On error the
	// OTel API returns noop instruments, so the extension degrades
	// gracefully.
	submitted, _ := meter.Int64Counter(
		"conductor.job.submitted",
		metric.WithDescription("Total number of jobs submitted"),
		metric.WithUnit("{job}"),
	)
	succeeded, _ := meter.Int64Counter(
		"conductor.job.succeeded",
		metric.WithDescription("Total number of jobs that reached SUCCEEDED"),
		metric.WithUnit("{job}"),
	)
	failed, _ := meter.Int64Counter(
		"conductor.job.failed",
		metric.WithDescription("Total number of jobs that ended in failure"),
		metric.WithUnit("{job}"),
	)
	cancelled, _ := meter.Int64Counter(
		"conductor.job.cancelled",
		metric.WithDescription("Total number of jobs cancelled"),
		metric.WithUnit("{job}"),
	)
	return &MetricsExtension{
		jobSubmitted: submitted,
		jobSucceeded: succeeded,
		jobFailed:    failed,
		jobCancelled: cancelled,
	}
}

// Name implements hook.Extension.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnJobSubmitted implements hook.JobSubmitted.
func (m *MetricsExtension) OnJobSubmitted(ctx context.Context, _ id.InvocationID, spec job.Spec, _ job.Handle) error {
	m.jobSubmitted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("queue", spec.Queue),
	))
	return nil
}

// OnJobSucceeded implements hook.JobSucceeded.
func (m *MetricsExtension) OnJobSucceeded(ctx context.Context, _ id.InvocationID, _ *job.Description) error {
	m.jobSucceeded.Add(ctx, 1)
	return nil
}

// OnJobFailed implements hook.JobFailed.
func (m *MetricsExtension) OnJobFailed(ctx context.Context, _ id.InvocationID, d *job.Description, _ error) error {
	status := ""
	if d != nil {
		status = string(d.Status)
	}
	m.jobFailed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
	return nil
}

// OnJobCancelled implements hook.JobCancelled.
func (m *MetricsExtension) OnJobCancelled(ctx context.Context, _ id.InvocationID, _ job.Handle, _ string) error {
	m.jobCancelled.Add(ctx, 1)
	return nil
}
