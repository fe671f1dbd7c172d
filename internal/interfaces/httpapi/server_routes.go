package httpapi

import "net/http"

// MetricsExporter serves the scrape endpoint and records HTTP metrics.
type MetricsExporter interface {
	HTTPObserver
	Handler() http.Handler
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics MetricsExporter) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/health", handler.GetHealth)
	mux.HandleFunc("GET /v1/health/metrics", handler.GetHealthMetrics)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}
}

func registerDataRoutes(mux *http.ServeMux, handler *Handler, apiKey string, limiter *KeyedLimiter) {
	protect := func(fn http.HandlerFunc) http.Handler {
		return RequireAPIKey(apiKey, limiter, fn)
	}

	mux.Handle("GET /v1/fixtures/live", protect(handler.ListLiveMatches))
	mux.Handle("GET /v1/fixtures", protect(handler.ListFixtures))
	mux.Handle("GET /v1/fixtures/{matchID}", protect(handler.GetMatch))
	mux.Handle("GET /v1/standings", protect(handler.GetStandings))
	mux.Handle("GET /v1/teams/{teamID}", protect(handler.GetTeam))
	mux.Handle("GET /v1/matches/finished", protect(handler.ListFinishedMatches))
	mux.Handle("GET /v1/matches/live/cards", protect(handler.ListLiveMatchCards))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-live", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncLiveJob)))
	mux.Handle("POST /v1/internal/jobs/sync-standings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncStandingsJob)))
	mux.Handle("POST /v1/internal/jobs/sync-fixtures", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncFixturesJob)))
	mux.Handle("POST /v1/internal/jobs/emergency-sync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunEmergencySyncJob)))
}
