package observability_test

import (
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/xraph/conductor/id"
	"github.com/xraph/conductor/job"
	"github.com/xraph/conductor/observability"
)

func setupTestMeter() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	return reader, mp
}

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s: expected Sum[int64] data type", name)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestMetricsExtension_CountsLifecycleEvents(t *testing.T) {
	reader, mp := setupTestMeter()
	ext := observability.NewMetricsExtensionWithMeter(mp.Meter("test"))
	ctx := context.Background()
	inv := id.NewInvocationID()
	spec := job.Spec{Name: "etl", Definition: "etl-def", Queue: "default"}

	if err := ext.OnJobSubmitted(ctx, inv, spec, "job-1"); err != nil {
		t.Fatalf("OnJobSubmitted: %v", err)
	}
	if err := ext.OnJobSubmitted(ctx, inv, spec, "job-2"); err != nil {
		t.Fatalf("OnJobSubmitted: %v", err)
	}
	if err := ext.OnJobSucceeded(ctx, inv, &job.Description{Handle: "job-1", Status: job.StatusSucceeded}); err != nil {
		t.Fatalf("OnJobSucceeded: %v", err)
	}
	if err := ext.OnJobFailed(ctx, inv, &job.Description{Handle: "job-2", Status: job.StatusFailed}, errors.New("boom")); err != nil {
		t.Fatalf("OnJobFailed: %v", err)
	}
	if err := ext.OnJobCancelled(ctx, inv, "job-2", "user requested"); err != nil {
		t.Fatalf("OnJobCancelled: %v", err)
	}

	checks := map[string]int64{
		"conductor.job.submitted": 2,
		"conductor.job.succeeded": 1,
		"conductor.job.failed":    1,
		"conductor.job.cancelled": 1,
	}
	for name, want := range checks {
		if got := counterValue(t, reader, name); got != want {
			t.Errorf("%s = %d, want %d", name, got, want)
		}
	}
}

func TestMetricsExtension_FailedHandlesNilDescription(t *testing.T) {
	reader, mp := setupTestMeter()
	ext := observability.NewMetricsExtensionWithMeter(mp.Meter("test"))

	if err := ext.OnJobFailed(context.Background(), id.NewInvocationID(), nil, errors.New("timed out")); err != nil {
		t.Fatalf("OnJobFailed: %v", err)
	}
	if got := counterValue(t, reader, "conductor.job.failed"); got != 1 {
		t.Errorf("conductor.job.failed = %d, want 1", got)
	}
}

func TestMetricsExtension_Name(t *testing.T) {
	if got := observability.NewMetricsExtension().Name(); got != "observability-metrics" {
		t.Errorf("Name() = %q, want %q", got, "observability-metrics")
	}
}
