package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var usecaseTracer = otel.Tracer("football-serie-a/internal/usecase")

// startUsecaseSpan opens a child span only under an existing trace, so
// unsampled callers such as health probes do not start orphan traces.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noop.Span{}
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// startJobSpan opens a root span for scheduled work that has no request to hang off.
func startJobSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return usecaseTracer.Start(ctx, name,
		trace.WithNewRoot(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

func operationAttr(operation string) attribute.KeyValue {
	return attribute.String("football.operation", operation)
}

func originAttr(origin Origin) attribute.KeyValue {
	return attribute.String("football.origin", string(origin))
}
