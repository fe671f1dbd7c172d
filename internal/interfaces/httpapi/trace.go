package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("football-serie-a/internal/interfaces/httpapi")

// startSpan opens a handler span under the otelhttp server span. Requests the
// tracing middleware skipped, such as /healthz, stay untraced.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !isHandlerSpan(name) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noop.Span{}
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix) && len(name) > len(handlerSpanPrefix)
}

func competitionAttr(code string) attribute.KeyValue {
	return attribute.String("football.competition", code)
}

func entityIDAttr(kind string, id int64) attribute.KeyValue {
	return attribute.Int64("football."+kind+"_id", id)
}
