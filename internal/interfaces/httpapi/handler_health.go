package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Amaradona-max/football-serie-a/internal/platform/resilience"
	"github.com/Amaradona-max/football-serie-a/internal/usecase"
)

type healthDTO struct {
	Status      string              `json:"status"`
	Environment string              `json:"environment"`
	Components  healthComponentsDTO `json:"components"`
	CheckedAt   time.Time           `json:"checked_at"`
}

type healthComponentsDTO struct {
	Cache     cacheHealthDTO             `json:"cache"`
	Providers []resilience.BreakerStatus `json:"providers"`
}

type cacheHealthDTO struct {
	Backend   string `json:"backend"`
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

type healthMetricsDTO struct {
	CircuitBreakers map[string]resilience.CircuitState `json:"circuit_breakers"`
	FailureCounts   map[string]int                     `json:"failure_counts"`
	CacheConnected  bool                               `json:"cache_connected"`
}

func (h *Handler) checkHealth(w http.ResponseWriter, r *http.Request) (usecase.HealthReport, bool) {
	if h.health == nil {
		writeError(r.Context(), w, fmt.Errorf("%w: health checks are not configured", usecase.ErrDependencyUnavailable))
		return usecase.HealthReport{}, false
	}
	return h.health.Check(r.Context()), true
}

// GetHealth reports degraded state with 200; only the body changes.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHealth")
	defer span.End()

	report, ok := h.checkHealth(w, r.WithContext(ctx))
	if !ok {
		return
	}

	writeSuccess(ctx, w, http.StatusOK, healthDTO{
		Status:      report.Status,
		Environment: report.Environment,
		Components: healthComponentsDTO{
			Cache: cacheHealthDTO{
				Backend:   report.CacheBackend,
				Connected: report.CacheConnected,
				Error:     report.CacheError,
			},
			Providers: report.Providers,
		},
		CheckedAt: report.CheckedAt,
	})
}

func (h *Handler) GetHealthMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHealthMetrics")
	defer span.End()

	report, ok := h.checkHealth(w, r.WithContext(ctx))
	if !ok {
		return
	}

	out := healthMetricsDTO{
		CircuitBreakers: make(map[string]resilience.CircuitState, len(report.Providers)),
		FailureCounts:   make(map[string]int, len(report.Providers)),
		CacheConnected:  report.CacheConnected,
	}
	for _, item := range report.Providers {
		out.CircuitBreakers[item.Name] = item.State
		out.FailureCounts[item.Name] = item.Failures
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
