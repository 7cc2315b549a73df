package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/sitehealth/health"
)

// Tracer starts and ends spans around check executions.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: EndSpan is best-effort and must not panic.
type Tracer interface {
	StartSpan(ctx context.Context, meta CheckMeta) (context.Context, trace.Span)

	// EndSpan records the outcome and ends the span. A fault marks the span
	// as an error; a Warning or Critical status alone does not.
	EndSpan(span trace.Span, status health.Status, fault error)
}

type otelTracer struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &otelTracer{tracer: t}
}

func (t *otelTracer) StartSpan(ctx context.Context, meta CheckMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("check.slug", meta.Slug),
		attribute.String("check.provider", meta.Provider),
	}
	if meta.Category != "" {
		attrs = append(attrs, attribute.String("check.category", meta.Category))
	}
	if meta.Title != "" {
		attrs = append(attrs, attribute.String("check.title", meta.Title))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *otelTracer) EndSpan(span trace.Span, status health.Status, fault error) {
	span.SetAttributes(
		attribute.String("check.status", status.String()),
		attribute.Bool("check.fault", fault != nil),
	)
	if fault != nil {
		span.RecordError(fault)
		span.SetStatus(codes.Error, fault.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
