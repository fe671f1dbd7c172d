package usecase

import (
	"context"
	"time"

	"github.com/Amaradona-max/football-serie-a/internal/platform/cache"
	"github.com/Amaradona-max/football-serie-a/internal/platform/resilience"
)

const (
	HealthStatusHealthy  = "healthy"
	HealthStatusDegraded = "degraded"

	healthProbeKey = "health:probe"
)

type HealthReport struct {
	Status         string
	Environment    string
	CacheBackend   string
	CacheConnected bool
	CacheError     string
	Providers      []resilience.BreakerStatus
	CheckedAt      time.Time
}

// OpenBreakers counts providers currently skipped by the fallback chain.
func (r HealthReport) OpenBreakers() int {
	count := 0
	for _, item := range r.Providers {
		if item.State == resilience.CircuitStateOpen {
			count++
		}
	}
	return count
}

type breakerSnapshotter interface {
	BreakerSnapshot() []resilience.BreakerStatus
}

type HealthService struct {
	environment  string
	cacheBackend string
	store        cache.Store
	breakers     breakerSnapshotter
	timeout      time.Duration
	now          func() time.Time
}

func NewHealthService(environment, cacheBackend string, store cache.Store, breakers breakerSnapshotter) *HealthService {
	return &HealthService{
		environment:  environment,
		cacheBackend: cacheBackend,
		store:        store,
		breakers:     breakers,
		timeout:      2 * time.Second,
		now:          time.Now,
	}
}

// Check never fails: a broken cache or an open breaker degrades the report.
func (s *HealthService) Check(ctx context.Context) HealthReport {
	ctx, span := startUsecaseSpan(ctx, "usecase.HealthService.Check")
	defer span.End()

	report := HealthReport{
		Status:       HealthStatusHealthy,
		Environment:  s.environment,
		CacheBackend: s.cacheBackend,
		Providers:    []resilience.BreakerStatus{},
		CheckedAt:    s.now().UTC(),
	}

	if err := s.probeCache(ctx); err != nil {
		report.CacheError = err.Error()
	} else {
		report.CacheConnected = true
	}

	if s.breakers != nil {
		report.Providers = s.breakers.BreakerSnapshot()
	}

	if !report.CacheConnected || report.OpenBreakers() > 0 {
		report.Status = HealthStatusDegraded
	}
	return report
}

func (s *HealthService) probeCache(ctx context.Context) error {
	if s.store == nil {
		return cache.ErrStoreUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		return err
	}
	_, err := s.store.Exists(ctx, healthProbeKey)
	return err
}
