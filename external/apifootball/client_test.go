package apifootball

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "rapid-key",
		Timeout: 2 * time.Second,
		Season:  2025,
		Leagues: map[string]int{"sa": 135, "PL": 39},
	})
	client.now = func() time.Time { return time.Date(2026, 1, 11, 21, 0, 0, 0, time.UTC) }
	return client
}

func TestClient_LiveMatchesMapsFixture(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures", r.URL.Path)
		assert.Equal(t, "135", r.URL.Query().Get("league"))
		assert.Equal(t, "2025", r.URL.Query().Get("season"))
		assert.Equal(t, "all", r.URL.Query().Get("live"))
		assert.Equal(t, "rapid-key", r.Header.Get("X-RapidAPI-Key"))
		_, _ = w.Write([]byte(`{
		  "errors": [],
		  "response": [{
		    "fixture": {"id": 1208, "referee": "M. Guida", "date": "2026-01-11T19:45:00+00:00",
		      "venue": {"name": "San Siro"}, "status": {"short": "HT", "elapsed": 45}},
		    "league": {"id": 135, "name": "Serie A", "season": 2025, "round": "Regular Season - 20"},
		    "teams": {"home": {"id": 505, "name": "Inter"}, "away": {"id": 492, "name": "Napoli"}},
		    "goals": {"home": 1, "away": 1},
		    "score": {"halftime": {"home": 1, "away": 1}, "extratime": {"home": null, "away": null}},
		    "events": [
		      {"time": {"elapsed": 10}, "team": {"name": "Inter"}, "player": {"name": "Lautaro"}, "type": "Goal", "detail": "Normal Goal"},
		      {"time": {"elapsed": 30}, "team": {"name": "Napoli"}, "player": {"name": "Lukaku"}, "type": "Goal", "detail": "Penalty"},
		      {"time": {"elapsed": 40}, "team": {"name": "Napoli"}, "player": {"name": "X"}, "type": "Var", "detail": "Goal cancelled"}
		    ]
		  }]
		}`))
	})

	matches, err := client.LiveMatches(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, int64(1208), m.ID)
	assert.Equal(t, football.StatusPaused, m.Status)
	assert.Equal(t, 20, m.Matchday)
	assert.Equal(t, "San Siro", m.Venue)
	assert.Equal(t, football.ProviderAPIFootball, m.Provider)
	require.NotNil(t, m.Score.FullTime.Home)
	assert.Equal(t, 1, *m.Score.FullTime.Home)
	assert.Nil(t, m.Score.ExtraTime)
	require.Len(t, m.Events, 2)
	assert.Equal(t, football.EventPenalty, m.Events[1].Type)
	assert.Equal(t, time.Date(2026, 1, 11, 19, 45, 0, 0, time.UTC), m.KickoffAt)
}

func TestClient_FixturesRound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "39", r.URL.Query().Get("league"))
		assert.Equal(t, "Regular Season - 5", r.URL.Query().Get("round"))
		_, _ = w.Write([]byte(`{"errors": [], "response": []}`))
	})

	matchday := 5
	matches, err := client.Fixtures(context.Background(), "pl", &matchday)
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestClient_UnknownCompetitionHasNothing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s", r.URL.String())
	})

	matches, err := client.LiveMatches(context.Background(), "BL1")
	require.NoError(t, err)
	assert.Empty(t, matches)

	standings, err := client.Standings(context.Background(), "BL1")
	require.NoError(t, err)
	assert.Nil(t, standings)
}

func TestClient_ProviderErrorsObjectIsTransient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors": {"requests": "You have reached the request limit for the day"}, "response": []}`))
	})

	_, err := client.Standings(context.Background(), "SA")
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestClient_StatusCodes(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusServiceUnavailable)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	})

	_, err := client.MatchByID(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsTransient(err))

	status.Store(http.StatusUnauthorized)
	_, err = client.MatchByID(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, IsTransient(err))
}

func TestClient_NotFoundIsNil(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Endpoint not found"}`))
	})
	ctx := context.Background()

	match, err := client.MatchByID(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, match)

	team, err := client.Team(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, team)

	standings, err := client.Standings(ctx, "SA")
	require.NoError(t, err)
	assert.Nil(t, standings)

	matchday := 3
	fixtures, err := client.Fixtures(ctx, "SA", &matchday)
	require.NoError(t, err)
	assert.NotNil(t, fixtures)
	assert.Empty(t, fixtures)

	live, err := client.LiveMatches(ctx, "SA")
	require.NoError(t, err)
	assert.Empty(t, live)

	assert.Equal(t, int32(5), requests.Load())
}

func TestClient_StandingsAndTeam(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/standings":
			_, _ = w.Write([]byte(`{"errors": [], "response": [{"league": {"name": "Serie A", "season": 2025, "standings": [[
			  {"rank": 1, "team": {"id": 505, "name": "Inter"}, "points": 42, "goalsDiff": 25, "form": "WWLWW",
			   "all": {"played": 18, "win": 14, "draw": 0, "lose": 4, "goals": {"for": 40, "against": 15}}}
			]]}}]}`))
		case "/teams":
			_, _ = w.Write([]byte(`{"errors": [], "response": [{"team": {"id": 505, "name": "Inter", "code": "INT", "country": "Italy", "founded": 1908}, "venue": {"name": "San Siro"}}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	standings, err := client.Standings(context.Background(), "SA")
	require.NoError(t, err)
	require.NotNil(t, standings)
	require.Len(t, standings.Rows, 1)
	assert.Equal(t, 42, standings.Rows[0].Points)
	assert.Equal(t, 40, standings.Rows[0].GoalsFor)

	team, err := client.Team(context.Background(), 505)
	require.NoError(t, err)
	require.NotNil(t, team)
	assert.Equal(t, "INT", team.ShortName)
	assert.Equal(t, 1908, team.Founded)
	assert.Equal(t, "San Siro", team.Venue)
}

func TestParseRound(t *testing.T) {
	assert.Equal(t, 20, parseRound("Regular Season - 20"))
	assert.Equal(t, 0, parseRound("Quarter-finals"))
	assert.Equal(t, 0, parseRound(""))
}
