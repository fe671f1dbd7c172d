package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
	"github.com/Amaradona-max/football-serie-a/internal/usecase"
)

type matchListDTO struct {
	Competition string           `json:"competition"`
	Matchday    *int             `json:"matchday,omitempty"`
	Count       int              `json:"count"`
	Items       []football.Match `json:"items"`
}

func (h *Handler) competition(value string) string {
	if value == "" {
		return h.football.DefaultCompetition()
	}
	return value
}

func (h *Handler) ListLiveMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveMatches")
	defer span.End()

	query := decodeCompetitionQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	competition := h.competition(query.Competition)
	span.SetAttributes(competitionAttr(competition))
	matches, err := h.football.LiveMatches(ctx, competition)
	if err != nil {
		h.logger.WarnContext(ctx, "list live matches failed", "competition", competition, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchListDTO{
		Competition: competition,
		Count:       len(matches),
		Items:       matches,
	})
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	query, err := decodeFixturesQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	competition := h.competition(query.Competition)
	span.SetAttributes(competitionAttr(competition))
	matches, err := h.football.Fixtures(ctx, competition, query.Matchday)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "competition", competition, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchListDTO{
		Competition: competition,
		Matchday:    query.Matchday,
		Count:       len(matches),
		Items:       matches,
	})
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	id, err := parsePathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	span.SetAttributes(entityIDAttr("match", id))

	match, err := h.football.MatchByID(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}
	if match == nil {
		writeError(ctx, w, fmt.Errorf("%w: match %d not found", usecase.ErrNotFound, id))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, match)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	query := decodeCompetitionQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	competition := h.competition(query.Competition)
	span.SetAttributes(competitionAttr(competition))
	standings, err := h.football.Standings(ctx, competition)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "competition", competition, "error", err)
		writeError(ctx, w, err)
		return
	}
	if standings == nil {
		writeError(ctx, w, fmt.Errorf("%w: standings not available for %s", usecase.ErrNotFound, competition))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standings)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	id, err := parsePathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	span.SetAttributes(entityIDAttr("team", id))

	team, err := h.football.Team(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}
	if team == nil {
		writeError(ctx, w, fmt.Errorf("%w: team %d not found", usecase.ErrNotFound, id))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, team)
}

type finishedMatchesDTO struct {
	Competition string                        `json:"competition"`
	Matchday    *int                          `json:"matchday,omitempty"`
	Count       int                           `json:"count"`
	Items       []usecase.FinishedMatchReport `json:"items"`
}

type liveMatchCardsDTO struct {
	Competition string                  `json:"competition"`
	Count       int                     `json:"count"`
	Items       []usecase.LiveMatchCard `json:"items"`
}

func (h *Handler) ListFinishedMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFinishedMatches")
	defer span.End()

	query, err := decodeFixturesQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	competition := h.competition(query.Competition)
	span.SetAttributes(competitionAttr(competition))
	matches, err := h.football.Fixtures(ctx, competition, query.Matchday)
	if err != nil {
		h.logger.WarnContext(ctx, "list finished matches failed", "competition", competition, "error", err)
		writeError(ctx, w, err)
		return
	}

	reports := usecase.FinishedMatchReports(matches)
	writeSuccess(ctx, w, http.StatusOK, finishedMatchesDTO{
		Competition: competition,
		Matchday:    query.Matchday,
		Count:       len(reports),
		Items:       reports,
	})
}

func (h *Handler) ListLiveMatchCards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveMatchCards")
	defer span.End()

	query := decodeCompetitionQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	competition := h.competition(query.Competition)
	span.SetAttributes(competitionAttr(competition))
	matches, err := h.football.LiveMatches(ctx, competition)
	if err != nil {
		h.logger.WarnContext(ctx, "list live match cards failed", "competition", competition, "error", err)
		writeError(ctx, w, err)
		return
	}

	cards := usecase.LiveMatchCards(matches)
	writeSuccess(ctx, w, http.StatusOK, liveMatchCardsDTO{
		Competition: competition,
		Count:       len(cards),
		Items:       cards,
	})
}
