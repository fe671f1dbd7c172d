package archive

import (
	"context"
	"strings"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
)

// Provider serves historical data from a Repository. It never reports live
// matches, which makes it the last, non-live tier of the fallback chain.
type Provider struct {
	repo               Repository
	defaultCompetition string
}

var _ football.Provider = (*Provider)(nil)

func NewProvider(repo Repository, defaultCompetition string) *Provider {
	competition := strings.ToUpper(strings.TrimSpace(defaultCompetition))
	if competition == "" {
		competition = "SA"
	}
	return &Provider{repo: repo, defaultCompetition: competition}
}

func (p *Provider) Name() football.ProviderName {
	return football.ProviderArchive
}

func (p *Provider) LiveMatches(context.Context, string) ([]football.Match, error) {
	return []football.Match{}, nil
}

func (p *Provider) MatchByID(ctx context.Context, id int64) (*football.Match, error) {
	return p.repo.MatchByID(ctx, id)
}

func (p *Provider) Standings(ctx context.Context, competition string) (*football.Standings, error) {
	return p.repo.Standings(ctx, p.competition(competition))
}

func (p *Provider) Fixtures(ctx context.Context, competition string, matchday *int) ([]football.Match, error) {
	return p.repo.Fixtures(ctx, p.competition(competition), matchday)
}

func (p *Provider) Team(ctx context.Context, id int64) (*football.Team, error) {
	return p.repo.Team(ctx, id)
}

func (p *Provider) competition(value string) string {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return p.defaultCompetition
	}
	return value
}
