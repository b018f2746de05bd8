package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// TypeMeta describes the artifact build being instrumented.
type TypeMeta struct {
	Type    string // Fully qualified Go type name (required)
	Kind    string // Shape kind (optional)
	Source  string // Shape provider description (optional)
	BuildID string // Unique ID of one root build (set by Middleware)
}

// SpanName returns the deterministic span name for this build.
// Format: shape.build.<type>
func (m TypeMeta) SpanName() string {
	return "shape.build." + m.Type
}

// Tracer wraps OpenTelemetry tracing with build span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a root build.
	StartSpan(ctx context.Context, meta TypeMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a span with the build metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta TypeMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("shape.type", meta.Type),
		attribute.Bool("shape.error", false),
	}
	if meta.Kind != "" {
		attrs = append(attrs, attribute.String("shape.kind", meta.Kind))
	}
	if meta.Source != "" {
		attrs = append(attrs, attribute.String("shape.source", meta.Source))
	}
	if meta.BuildID != "" {
		attrs = append(attrs, attribute.String("shape.build.id", meta.BuildID))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("shape.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta TypeMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
