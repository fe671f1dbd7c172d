package archive

import (
	"context"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
)

// Repository is the read side of the historical archive. Lookups that find
// nothing return nil or an empty slice without an error.
type Repository interface {
	Fixtures(ctx context.Context, competition string, matchday *int) ([]football.Match, error)
	MatchByID(ctx context.Context, id int64) (*football.Match, error)
	Standings(ctx context.Context, competition string) (*football.Standings, error)
	Team(ctx context.Context, id int64) (*football.Team, error)
}

// Writer persists provider results so they can be served later as history.
type Writer interface {
	SaveMatches(ctx context.Context, competition string, matches []football.Match) error
	SaveStandings(ctx context.Context, competition string, standings football.Standings) error
}
