package observe

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BuildFunc is the signature of a root artifact build.
type BuildFunc func(ctx context.Context, meta TypeMeta) (any, error)

// Middleware wraps root builds with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: Wrap returns a BuildFunc safe for concurrent use.
//   - Context: the span context is propagated to the wrapped function.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
//   - Ownership: artifacts are passed through and never logged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = &noopMetrics{}
	}
	if logger == nil {
		logger = &noopLogger{}
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps fn with a span, build metrics and an outcome log entry.
// Each call is assigned a fresh BuildID.
func (m *Middleware) Wrap(fn BuildFunc) BuildFunc {
	return func(ctx context.Context, meta TypeMeta) (any, error) {
		if meta.BuildID == "" {
			meta.BuildID = uuid.NewString()
		}

		ctx, span := m.tracer.StartSpan(ctx, meta)
		start := time.Now()

		result, err := fn(ctx, meta)

		duration := time.Since(start)
		m.tracer.EndSpan(span, err)
		m.metrics.RecordBuild(ctx, meta, duration, err)

		logger := m.logger.WithType(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Microseconds()) / 1000},
		}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			logger.Error(ctx, "artifact build failed", fields...)
		} else {
			logger.Debug(ctx, "artifact build completed", fields...)
		}

		return result, err
	}
}

// RecordConflict records a generation discarded on commit conflict.
func (m *Middleware) RecordConflict(ctx context.Context, meta TypeMeta, attempt int) {
	m.metrics.RecordConflict(ctx, meta)
	m.logger.WithType(meta).Debug(ctx, "commit conflict, rebuilding",
		Field{Key: "attempt", Value: attempt},
	)
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(newTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
