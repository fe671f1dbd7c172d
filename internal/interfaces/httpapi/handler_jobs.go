package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Amaradona-max/football-serie-a/internal/usecase"
)

func (h *Handler) RunSyncLiveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncLiveJob")
	defer span.End()

	h.runJob(ctx, w, "sync-live", func(ctx context.Context) (usecase.SyncResult, error) {
		return h.sync.SyncLive(ctx)
	})
}

func (h *Handler) RunSyncStandingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncStandingsJob")
	defer span.End()

	h.runJob(ctx, w, "sync-standings", func(ctx context.Context) (usecase.SyncResult, error) {
		return h.sync.SyncStandings(ctx)
	})
}

func (h *Handler) RunSyncFixturesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncFixturesJob")
	defer span.End()

	h.runJob(ctx, w, "sync-fixtures", func(ctx context.Context) (usecase.SyncResult, error) {
		return h.sync.SyncFixtures(ctx)
	})
}

func (h *Handler) RunEmergencySyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunEmergencySyncJob")
	defer span.End()

	h.runJob(ctx, w, "emergency-sync", func(ctx context.Context) (usecase.SyncResult, error) {
		return h.sync.EmergencySync(ctx)
	})
}

func (h *Handler) runJob(ctx context.Context, w http.ResponseWriter, name string, run func(context.Context) (usecase.SyncResult, error)) {
	if h.sync == nil {
		writeError(ctx, w, fmt.Errorf("%w: sync jobs are not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := run(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run internal job failed", "job", name, "error", err)
		writeError(ctx, w, fmt.Errorf("%w: %s: %v", usecase.ErrDependencyUnavailable, name, err))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
