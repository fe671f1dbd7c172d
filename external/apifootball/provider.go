package apifootball

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
)

var _ football.Provider = (*Client)(nil)

func (c *Client) Name() football.ProviderName {
	return football.ProviderAPIFootball
}

func (c *Client) LiveMatches(ctx context.Context, competition string) ([]football.Match, error) {
	leagueID, ok := c.leagueID(competition)
	if !ok {
		return []football.Match{}, nil
	}
	query := c.seasonQuery(leagueID)
	query.Set("live", "all")
	return c.fetchFixtures(ctx, query)
}

func (c *Client) Fixtures(ctx context.Context, competition string, matchday *int) ([]football.Match, error) {
	leagueID, ok := c.leagueID(competition)
	if !ok {
		return []football.Match{}, nil
	}
	query := c.seasonQuery(leagueID)
	if matchday != nil {
		query.Set("round", fmt.Sprintf("Regular Season - %d", *matchday))
	}
	return c.fetchFixtures(ctx, query)
}

func (c *Client) MatchByID(ctx context.Context, id int64) (*football.Match, error) {
	items, err := fetch[fixtureItem](ctx, c, "/fixtures", url.Values{"id": []string{strconv.FormatInt(id, 10)}})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch fixture id=%d: %w", id, err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	match := mapFixture(items[0], c.now())
	return &match, nil
}

func (c *Client) Standings(ctx context.Context, competition string) (*football.Standings, error) {
	leagueID, ok := c.leagueID(competition)
	if !ok {
		return nil, nil
	}
	items, err := fetch[standingsItem](ctx, c, "/standings", c.seasonQuery(leagueID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch standings league=%d: %w", leagueID, err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return mapStandings(items[0], c.now()), nil
}

func (c *Client) Team(ctx context.Context, id int64) (*football.Team, error) {
	items, err := fetch[teamItem](ctx, c, "/teams", url.Values{"id": []string{strconv.FormatInt(id, 10)}})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch team id=%d: %w", id, err)
	}
	if len(items) == 0 || items[0].Team.ID <= 0 {
		return nil, nil
	}
	team := mapTeam(items[0])
	return &team, nil
}

func (c *Client) fetchFixtures(ctx context.Context, query url.Values) ([]football.Match, error) {
	items, err := fetch[fixtureItem](ctx, c, "/fixtures", query)
	if err != nil {
		if isNotFound(err) {
			return []football.Match{}, nil
		}
		return nil, fmt.Errorf("fetch fixtures: %w", err)
	}

	now := c.now()
	out := make([]football.Match, 0, len(items))
	for _, item := range items {
		if item.Fixture.ID <= 0 {
			continue
		}
		out = append(out, mapFixture(item, now))
	}
	return out, nil
}
