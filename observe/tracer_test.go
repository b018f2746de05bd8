package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestTypeMeta_SpanName(t *testing.T) {
	meta := TypeMeta{Type: "github.com/acme/geo.Point"}
	if got := meta.SpanName(); got != "shape.build.github.com/acme/geo.Point" {
		t.Errorf("SpanName() = %q", got)
	}
}

func TestTracer_SpanAttributes(t *testing.T) {
	tests := []struct {
		name  string
		meta  TypeMeta
		want  map[string]string
		unset []string
	}{
		{
			name: "full",
			meta: TypeMeta{Type: "geo.Point", Kind: "object", Source: "*reflectshape.Provider", BuildID: "b-1"},
			want: map[string]string{
				"shape.type":     "geo.Point",
				"shape.kind":     "object",
				"shape.source":   "*reflectshape.Provider",
				"shape.build.id": "b-1",
			},
		},
		{
			name:  "minimal",
			meta:  TypeMeta{Type: "geo.Point"},
			want:  map[string]string{"shape.type": "geo.Point"},
			unset: []string{"shape.kind", "shape.source", "shape.build.id"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
			tracer := newTracer(tp.Tracer("test"))

			_, span := tracer.StartSpan(context.Background(), tt.meta)
			tracer.EndSpan(span, nil)

			ended := recorder.Ended()
			if len(ended) != 1 {
				t.Fatalf("expected 1 span, got %d", len(ended))
			}
			got := map[string]string{}
			for _, attr := range ended[0].Attributes() {
				got[string(attr.Key)] = attr.Value.Emit()
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("attribute %s = %q, want %q", k, got[k], v)
				}
			}
			for _, k := range tt.unset {
				if _, ok := got[k]; ok {
					t.Errorf("attribute %s should not be set", k)
				}
			}
			if ended[0].SpanKind() != trace.SpanKindInternal {
				t.Errorf("span kind = %v, want internal", ended[0].SpanKind())
			}
			if ended[0].Status().Code != codes.Ok {
				t.Errorf("status = %v, want Ok", ended[0].Status().Code)
			}
		})
	}
}

func TestTracer_ContextPropagation(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := newTracer(tp.Tracer("test"))

	ctx, parent := tp.Tracer("test").Start(context.Background(), "parent")
	_, child := tracer.StartSpan(ctx, TypeMeta{Type: "geo.Point"})
	tracer.EndSpan(child, nil)
	parent.End()

	ended := recorder.Ended()
	if len(ended) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(ended))
	}
	if ended[0].Parent().SpanID() != ended[1].SpanContext().SpanID() {
		t.Error("build span is not a child of the caller's span")
	}
}

func TestTracer_ErrorRecording(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := newTracer(tp.Tracer("test"))

	_, span := tracer.StartSpan(context.Background(), TypeMeta{Type: "geo.Point"})
	tracer.EndSpan(span, errors.New("unsupported kind"))

	s := recorder.Ended()[0]
	if s.Status().Code != codes.Error || s.Status().Description != "unsupported kind" {
		t.Errorf("status = %+v", s.Status())
	}
	if len(s.Events()) == 0 {
		t.Error("expected the error to be recorded as an event")
	}
}

func TestTracer_NoopDoesNotPanic(t *testing.T) {
	tracer := newNoopTracer()
	ctx, span := tracer.StartSpan(context.Background(), TypeMeta{Type: "geo.Point"})
	if ctx == nil || span == nil {
		t.Fatal("noop tracer returned nil")
	}
	tracer.EndSpan(span, errors.New("ignored"))
}
