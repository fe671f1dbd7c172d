package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/Amaradona-max/football-serie-a/internal/config"
	"github.com/Amaradona-max/football-serie-a/internal/infrastructure/archive"
	"github.com/Amaradona-max/football-serie-a/internal/interfaces/httpapi"
	"github.com/Amaradona-max/football-serie-a/internal/platform/cache"
	"github.com/Amaradona-max/football-serie-a/internal/platform/logging"
	"github.com/Amaradona-max/football-serie-a/internal/platform/metrics"
	"github.com/Amaradona-max/football-serie-a/internal/platform/resilience"
	"github.com/Amaradona-max/football-serie-a/internal/usecase"
)

// App holds the wired service graph and the resources it must release.
type App struct {
	Server   *http.Server
	Football *usecase.FootballDataService
	Sync     *usecase.SyncService
	Metrics  *metrics.Recorder

	cfg       config.Config
	logger    *logging.Logger
	scheduler *cron.Cron
	cancel    context.CancelFunc
	closers   []func() error
}

// New wires every component from cfg. Background work (dataset watching) is
// bound to ctx and stopped by Close.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	ctx, cancel := context.WithCancel(ctx)
	a := &App{
		cfg:    cfg,
		logger: logger,
		cancel: cancel,
	}

	built := false
	defer func() {
		if !built {
			_ = a.Close()
		}
	}()

	store, err := a.buildCacheStore(ctx)
	if err != nil {
		return nil, err
	}
	dataCache := cache.New(store, cfg.CacheStaleRetention)

	a.Metrics = metrics.New(prometheus.NewRegistry())

	archiveRepo, archiveWriter, err := a.buildArchive(ctx)
	if err != nil {
		return nil, err
	}

	providers := buildProviders(cfg, archiveRepo, logger)
	if len(providers) == 0 {
		return nil, fmt.Errorf("no football provider is configured")
	}
	names := make([]string, 0, len(providers))
	for _, provider := range providers {
		names = append(names, string(provider.Name()))
	}

	breakers := resilience.NewBreakerRegistry(resilience.CircuitBreakerConfig{
		Enabled:      cfg.CircuitEnabled,
		MaxFailures:  cfg.CircuitMaxFailures,
		ResetTimeout: cfg.CircuitResetTimeout,
	}, names...)
	breakers.Observe(a.observeBreaker)
	for _, name := range names {
		a.Metrics.BreakerState(name, false, 0)
	}

	a.Football = usecase.NewFootballDataService(
		usecase.FootballDataServiceConfig{
			DefaultCompetition: cfg.DefaultCompetition,
			LiveTTL:            cfg.CacheTTLLive,
			StaticTTL:          cfg.CacheTTLStatic,
			Retry: resilience.NewRetryPolicy(resilience.RetryConfig{
				MaxRetries: cfg.ProviderMaxRetries,
				Backoff:    cfg.ProviderRetryBackoff,
			}),
		},
		providers,
		breakers,
		dataCache,
		a.Metrics,
		logger,
	)

	health := usecase.NewHealthService(cfg.AppEnv, cfg.CacheBackend, store, a.Football)

	a.Sync = usecase.NewSyncService(usecase.SyncServiceConfig{
		Competitions: cfg.SyncCompetitions,
		MaxWorkers:   cfg.SyncMaxWorkers,
		JobTimeout:   cfg.SyncJobTimeout,
		Schedules: usecase.SyncSchedules{
			Live:         cfg.SyncLiveCron,
			LiveMatchday: cfg.SyncLiveMatchdayCron,
			Standings:    cfg.SyncStandingsCron,
			Fixtures:     cfg.SyncFixturesCron,
		},
	}, a.Football, archiveWriter, a.Metrics, logger)

	handler := httpapi.NewHandler(a.Football, health, a.Sync, logger)
	router := httpapi.NewRouter(handler, a.Metrics, logger, httpapi.RouterConfig{
		APIKey:             cfg.APIKey,
		RateLimitRequests:  cfg.RateLimitRequests,
		RateLimitWindow:    cfg.RateLimitWindow,
		InternalJobToken:   cfg.InternalJobToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("football data service wired",
		"providers", names,
		"cache_backend", cfg.CacheBackend,
		"archive_backend", cfg.ArchiveBackend,
		"circuit_enabled", cfg.CircuitEnabled,
	)

	built = true
	return a, nil
}

// StartScheduler starts the cron sync jobs when enabled. Jobs run under ctx.
func (a *App) StartScheduler(ctx context.Context) error {
	if !a.cfg.SyncEnabled {
		a.logger.Info("sync scheduler disabled")
		return nil
	}
	scheduler, err := a.Sync.StartScheduler(ctx)
	if err != nil {
		return fmt.Errorf("start sync scheduler: %w", err)
	}
	a.scheduler = scheduler
	return nil
}

// Close stops the scheduler and background work, then releases the cache and
// database connections.
func (a *App) Close() error {
	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
		a.scheduler = nil
	}
	if a.cancel != nil {
		a.cancel()
	}

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) buildCacheStore(ctx context.Context) (cache.Store, error) {
	switch a.cfg.CacheBackend {
	case config.CacheBackendRedis:
		client, err := cache.NewRedisClient(ctx, a.cfg.RedisURL, a.cfg.ProviderTimeout)
		if client == nil {
			return nil, fmt.Errorf("build redis cache: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		if err != nil {
			a.logger.Warn("redis cache unreachable at startup, serving degraded", "error", err)
		}
		return cache.NewRedisStore(client), nil
	default:
		store, err := cache.NewMemoryStore(a.cfg.CacheMemoryMaxEntries)
		if err != nil {
			return nil, fmt.Errorf("build memory cache: %w", err)
		}
		return store, nil
	}
}

func (a *App) buildArchive(ctx context.Context) (archive.Repository, archive.Writer, error) {
	switch a.cfg.ArchiveBackend {
	case config.ArchiveBackendPostgres:
		db, err := openArchiveDB(ctx, a.cfg)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, db.Close)
		repo := archive.NewPostgresRepository(db)
		return repo, repo, nil
	default:
		repo, err := archive.NewDatasetRepository(a.cfg.ArchiveDatasetPath, a.logger)
		if err != nil {
			return nil, nil, fmt.Errorf("load archive dataset: %w", err)
		}
		if a.cfg.ArchiveWatch && a.cfg.ArchiveDatasetPath != "" {
			go func() {
				if err := repo.Watch(ctx); err != nil {
					a.logger.Error("archive dataset watcher stopped", "error", err)
				}
			}()
		}
		return repo, nil, nil
	}
}

func (a *App) observeBreaker(name string, from, to resilience.CircuitState, failures int) {
	a.Metrics.BreakerState(name, to == resilience.CircuitStateOpen, failures)
	if to == resilience.CircuitStateOpen {
		a.logger.Warn("circuit breaker opened", "provider", name, "from", from, "failures", failures)
		return
	}
	a.logger.Info("circuit breaker state changed", "provider", name, "from", from, "to", to, "failures", failures)
}
