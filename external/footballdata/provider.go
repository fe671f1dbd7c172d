package footballdata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
)

var _ football.Provider = (*Client)(nil)

func (c *Client) Name() football.ProviderName {
	return football.ProviderFootballData
}

func (c *Client) LiveMatches(ctx context.Context, competition string) ([]football.Match, error) {
	path := fmt.Sprintf("/competitions/%s/matches", url.PathEscape(c.competition(competition)))
	return c.fetchMatches(ctx, path, url.Values{"status": []string{"LIVE"}})
}

func (c *Client) Fixtures(ctx context.Context, competition string, matchday *int) ([]football.Match, error) {
	path := fmt.Sprintf("/competitions/%s/matches", url.PathEscape(c.competition(competition)))
	query := url.Values{}
	if matchday != nil {
		query.Set("matchday", strconv.Itoa(*matchday))
	}
	return c.fetchMatches(ctx, path, query)
}

func (c *Client) MatchByID(ctx context.Context, id int64) (*football.Match, error) {
	var item matchItem
	if err := c.doJSON(ctx, "/matches/"+strconv.FormatInt(id, 10), nil, &item); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch match id=%d: %w", id, err)
	}
	if item.ID <= 0 {
		return nil, nil
	}
	match := mapMatch(item, c.now())
	return &match, nil
}

func (c *Client) Standings(ctx context.Context, competition string) (*football.Standings, error) {
	code := c.competition(competition)
	var env standingsEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/competitions/%s/standings", url.PathEscape(code)), nil, &env); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch standings competition=%s: %w", code, err)
	}
	return mapStandings(env, c.now()), nil
}

func (c *Client) Team(ctx context.Context, id int64) (*football.Team, error) {
	var item teamItem
	if err := c.doJSON(ctx, "/teams/"+strconv.FormatInt(id, 10), nil, &item); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch team id=%d: %w", id, err)
	}
	if item.ID <= 0 {
		return nil, nil
	}
	team := mapTeam(item)
	return &team, nil
}

func (c *Client) fetchMatches(ctx context.Context, path string, query url.Values) ([]football.Match, error) {
	var env matchesEnvelope
	if err := c.doJSON(ctx, path, query, &env); err != nil {
		if isNotFound(err) {
			return []football.Match{}, nil
		}
		return nil, fmt.Errorf("fetch matches %s: %w", path, err)
	}

	now := c.now()
	out := make([]football.Match, 0, len(env.Matches))
	for _, item := range env.Matches {
		if item.ID <= 0 {
			continue
		}
		out = append(out, mapMatch(item, now))
	}
	return out, nil
}
