package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records artifact build metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordBuild records a finished root build with its duration and error.
	RecordBuild(ctx context.Context, meta TypeMeta, duration time.Duration, err error)

	// RecordConflict records a discarded generation due to a commit conflict.
	RecordConflict(ctx context.Context, meta TypeMeta)
}

type metricsImpl struct {
	totalCount    metric.Int64Counter
	errorCount    metric.Int64Counter
	conflictCount metric.Int64Counter
	durationHist  metric.Float64Histogram
}

func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	totalCount, err := meter.Int64Counter(
		"shape.build.total",
		metric.WithDescription("Total number of root artifact builds"),
		metric.WithUnit("{build}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"shape.build.errors",
		metric.WithDescription("Total number of failed root artifact builds"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	conflictCount, err := meter.Int64Counter(
		"shape.commit.conflicts",
		metric.WithDescription("Generations discarded because another build committed first"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"shape.build.duration_ms",
		metric.WithDescription("Root artifact build duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:    totalCount,
		errorCount:    errorCount,
		conflictCount: conflictCount,
		durationHist:  durationHist,
	}, nil
}

func attrsOf(meta TypeMeta) metric.MeasurementOption {
	attrs := []attribute.KeyValue{
		attribute.String("shape.type", meta.Type),
	}
	if meta.Kind != "" {
		attrs = append(attrs, attribute.String("shape.kind", meta.Kind))
	}
	return metric.WithAttributes(attrs...)
}

// RecordBuild records metrics for a root build.
func (m *metricsImpl) RecordBuild(ctx context.Context, meta TypeMeta, duration time.Duration, err error) {
	opt := attrsOf(meta)

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

// RecordConflict increments the commit conflict counter.
func (m *metricsImpl) RecordConflict(ctx context.Context, meta TypeMeta) {
	m.conflictCount.Add(ctx, 1, attrsOf(meta))
}

type noopMetrics struct{}

func (m *noopMetrics) RecordBuild(ctx context.Context, meta TypeMeta, duration time.Duration, err error) {
}

func (m *noopMetrics) RecordConflict(ctx context.Context, meta TypeMeta) {}
