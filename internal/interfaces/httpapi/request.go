package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Amaradona-max/football-serie-a/internal/usecase"
)

type competitionQuery struct {
	Competition string `validate:"omitempty,alphanum,min=2,max=10"`
}

type fixturesQuery struct {
	Competition string `validate:"omitempty,alphanum,min=2,max=10"`
	Matchday    *int   `validate:"omitempty,min=1,max=38"`
}

func decodeCompetitionQuery(r *http.Request) competitionQuery {
	return competitionQuery{
		Competition: strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("competition"))),
	}
}

func decodeFixturesQuery(r *http.Request) (fixturesQuery, error) {
	query := fixturesQuery{
		Competition: strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("competition"))),
	}

	raw := strings.TrimSpace(r.URL.Query().Get("matchday"))
	if raw == "" {
		return query, nil
	}
	matchday, err := strconv.Atoi(raw)
	if err != nil {
		return fixturesQuery{}, fmt.Errorf("%w: matchday must be an integer", usecase.ErrInvalidInput)
	}
	query.Matchday = &matchday
	return query, nil
}

func parsePathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}
