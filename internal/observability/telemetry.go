package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Amaradona-max/football-serie-a/internal/config"
	"github.com/Amaradona-max/football-serie-a/internal/platform/logging"
)

// Telemetry owns the process-wide tracing, profiling and pprof side channels.
type Telemetry struct {
	logger          *logging.Logger
	shutdownTracing func(context.Context) error
	stopProfiling   func() error
	pprof           *http.Server
	stopTimeout     time.Duration
}

// Start brings up every enabled side channel. On error, whatever already
// started is torn down before returning.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{
		logger:          logger,
		shutdownTracing: noopShutdown,
		stopProfiling:   func() error { return nil },
		stopTimeout:     cfg.ShutdownTimeout,
	}
	if t.stopTimeout <= 0 {
		t.stopTimeout = 10 * time.Second
	}

	var err error
	if t.shutdownTracing, err = InitUptrace(cfg, logger); err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	if t.stopProfiling, err = InitPyroscope(cfg, logger); err != nil {
		_ = t.shutdownTracing(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	if t.pprof, err = StartPprofServer(cfg, logger); err != nil {
		_ = t.stopProfiling()
		_ = t.shutdownTracing(context.Background())
		return nil, fmt.Errorf("start pprof server: %w", err)
	}
	return t, nil
}

// Shutdown stops pprof and profiling, then flushes pending spans with ctx.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if err := StopPprofServer(t.pprof, t.logger, t.stopTimeout); err != nil {
		errs = append(errs, fmt.Errorf("stop pprof server: %w", err))
	}
	if err := t.stopProfiling(); err != nil {
		errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
	}
	if err := t.shutdownTracing(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown uptrace: %w", err))
	}
	return errors.Join(errs...)
}
