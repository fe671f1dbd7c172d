package httpapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestIsHandlerSpan(t *testing.T) {
	assert.True(t, isHandlerSpan("httpapi.Handler.GetStandings"))
	assert.False(t, isHandlerSpan("httpapi.Handler."))
	assert.False(t, isHandlerSpan("httpapi.RequestLogging"))
	assert.False(t, isHandlerSpan("httpapi.writeError"))
}

func TestStartSpanSkipsUntracedRequests(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.GetStandings", competitionAttr("SA"))
	defer span.End()

	assert.Equal(t, ctx, got)
	assert.False(t, span.SpanContext().IsValid())
	assert.False(t, trace.SpanContextFromContext(got).IsValid())
}

func TestSpanAttributes(t *testing.T) {
	assert.Equal(t, "football.competition", string(competitionAttr("SA").Key))
	attr := entityIDAttr("match", 42)
	assert.Equal(t, "football.match_id", string(attr.Key))
	assert.Equal(t, int64(42), attr.Value.AsInt64())
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/metrics", " /healthz ", "/v1/health/metrics"} {
		assert.False(t, shouldTraceRequest(path), path)
	}
	for _, path := range []string{"/v1/fixtures/live", "/v1/standings", "/v1/health", "/"} {
		assert.True(t, shouldTraceRequest(path), path)
	}
}
