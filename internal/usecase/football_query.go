package usecase

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
	"github.com/Amaradona-max/football-serie-a/internal/platform/cache"
	"github.com/Amaradona-max/football-serie-a/internal/platform/resilience"
)

// queryPlan describes one logical query for runQuery.
type queryPlan[T any] struct {
	operation string
	key       string
	ttl       time.Duration
	// skipFresh bypasses the fresh cache read so the providers are asked again.
	skipFresh bool
	call      func(ctx context.Context, provider football.Provider) (T, error)
	// accept reports whether a provider answer ends the fallback chain.
	// Rejected answers move on to the next provider without a breaker failure.
	accept func(T) bool
}

func runQuery[T any](ctx context.Context, s *FootballDataService, plan queryPlan[T]) (T, Origin) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootballDataService."+plan.operation, operationAttr(plan.operation))
	defer span.End()

	var zero T

	if !plan.skipFresh {
		var cached T
		lookup := s.cache.Fresh(ctx, plan.key, &cached)
		s.observer.CacheLookup(plan.operation, string(lookup.Result))
		if lookup.Result == cache.ResultFailed {
			s.logger.WarnContext(ctx, "cache read failed, treating as miss", "key", plan.key, "error", lookup.Err)
		}
		if lookup.Hit() {
			span.SetAttributes(originAttr(OriginCache))
			return cached, OriginCache
		}
	}

	for _, provider := range s.providers {
		name := string(provider.Name())

		var breaker *resilience.CircuitBreaker
		if s.breakers != nil {
			breaker = s.breakers.Get(name)
		}
		if breaker != nil && breaker.Allow() != nil {
			s.logger.DebugContext(ctx, "provider skipped, circuit open", "provider", name, "operation", plan.operation)
			continue
		}

		startedAt := time.Now()
		value, err := resilience.Retry(ctx, s.cfg.Retry, func(ctx context.Context) (T, error) {
			return plan.call(ctx, provider)
		})
		s.observer.ProviderCall(name, plan.operation, err, time.Since(startedAt))

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				// The caller gave up; that says nothing about the provider.
				s.logger.DebugContext(ctx, "query cancelled during provider call", "provider", name, "operation", plan.operation, "error", ctxErr)
				break
			}
			if breaker != nil {
				breaker.RecordFailure()
			}
			s.logger.WarnContext(ctx, "provider call failed, trying next provider",
				"provider", name,
				"operation", plan.operation,
				"key", plan.key,
				"error", err,
			)
			continue
		}
		if !plan.accept(value) {
			s.logger.DebugContext(ctx, "provider returned no data, trying next provider", "provider", name, "operation", plan.operation)
			continue
		}

		if err := s.cache.Put(ctx, plan.key, plan.ttl, value); err != nil {
			s.logger.WarnContext(ctx, "cache write failed", "key", plan.key, "error", err)
		}
		span.SetAttributes(
			originAttr(OriginProvider),
			attribute.String("football.provider", name),
		)
		return value, OriginProvider
	}

	var stale T
	lookup := s.cache.Stale(ctx, plan.key, &stale)
	if lookup.Hit() {
		s.observer.FallbackActivated(plan.operation, fallbackStaleCache)
		s.logger.WarnContext(ctx, "all providers failed, serving stale cache",
			"operation", plan.operation,
			"key", plan.key,
			"stored_at", lookup.StoredAt,
		)
		span.SetAttributes(originAttr(OriginStaleCache))
		return stale, OriginStaleCache
	}
	if lookup.Result == cache.ResultFailed && !errors.Is(lookup.Err, context.Canceled) {
		s.logger.WarnContext(ctx, "stale cache read failed", "key", plan.key, "error", lookup.Err)
	}

	s.observer.FallbackActivated(plan.operation, fallbackEmptyResult)
	s.logger.WarnContext(ctx, "no data available from any source", "operation", plan.operation, "key", plan.key)
	span.SetAttributes(originAttr(OriginNone))
	return zero, OriginNone
}
