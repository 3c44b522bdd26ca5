package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// GuardMeta identifies a guarded subscription for telemetry purposes.
type GuardMeta struct {
	Policy string // Admission policy instance name (required)
	Shape  string // Stream shape: "stream" or "single" (optional)
}

// SpanName returns the deterministic span name for this subscription.
// Format: stream.guard.<shape>.<policy> or stream.guard.<policy>
func (m GuardMeta) SpanName() string {
	if m.Shape != "" {
		return "stream.guard." + m.Shape + "." + m.Policy
	}
	return "stream.guard." + m.Policy
}

// Tracer wraps OpenTelemetry tracing with subscription-scoped span
// management. A caller starts a span when it subscribes and ends it
// when the terminal signal (or cancellation) arrives.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a guarded subscription.
	StartSpan(ctx context.Context, meta GuardMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with the guard metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta GuardMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("policy.name", meta.Policy),
		attribute.Bool("stream.error", false), // Updated in EndSpan if error
	}
	if meta.Shape != "" {
		attrs = append(attrs, attribute.String("stream.shape", meta.Shape))
	}

	return t.tracer.Start(ctx, meta.SpanName(), trace.WithAttributes(attrs...))
}

// EndSpan ends the span, recording error status when err is non-nil.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.SetAttributes(attribute.Bool("stream.error", true))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
