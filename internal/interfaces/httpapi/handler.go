package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
	"github.com/Amaradona-max/football-serie-a/internal/platform/logging"
	"github.com/Amaradona-max/football-serie-a/internal/usecase"
)

// FootballQueries is the read side served by the data routes.
type FootballQueries interface {
	DefaultCompetition() string
	LiveMatches(ctx context.Context, competition string) ([]football.Match, error)
	Fixtures(ctx context.Context, competition string, matchday *int) ([]football.Match, error)
	MatchByID(ctx context.Context, id int64) (*football.Match, error)
	Standings(ctx context.Context, competition string) (*football.Standings, error)
	Team(ctx context.Context, id int64) (*football.Team, error)
}

type HealthChecker interface {
	Check(ctx context.Context) usecase.HealthReport
}

type SyncRunner interface {
	SyncLive(ctx context.Context) (usecase.SyncResult, error)
	SyncStandings(ctx context.Context) (usecase.SyncResult, error)
	SyncFixtures(ctx context.Context) (usecase.SyncResult, error)
	EmergencySync(ctx context.Context) (usecase.SyncResult, error)
}

type Handler struct {
	football  FootballQueries
	health    HealthChecker
	sync      SyncRunner
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(football FootballQueries, health HealthChecker, sync SyncRunner, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		football:  football,
		health:    health,
		sync:      sync,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
