package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
	"github.com/Amaradona-max/football-serie-a/internal/platform/logging"
)

const smallDataset = `
competitions:
  - code: sa
    name: Serie A
    season: 2025
    updated_at: "2026-01-08T23:00:00Z"
    teams:
      - {id: 108, name: Inter}
      - {id: 98, name: Milan}
    standings:
      - {position: 2, team_id: 98, played: 1, lost: 1, goals_for: 0, goals_against: 1, points: 0}
      - {position: 1, team_id: 108, played: 1, won: 1, goals_for: 1, goals_against: 0, points: 3}
    matches:
      - {id: 2, matchday: 2, home_team_id: 98, away_team_id: 108, kickoff_at: "2026-01-11T20:45:00+01:00", status: TIMED}
      - {id: 1, matchday: 1, home_team_id: 108, away_team_id: 98, kickoff_at: "2026-01-04T20:45:00+01:00", status: FINISHED, home_score: 1, away_score: 0}
`

func writeDataset(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "archive.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEmbeddedDatasetServesSerieA(t *testing.T) {
	repo, err := NewDatasetRepository("", logging.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	standings, err := repo.Standings(ctx, "SA")
	require.NoError(t, err)
	require.NotNil(t, standings)
	require.Len(t, standings.Rows, 20)
	assert.Equal(t, "Inter", standings.Rows[0].Team.Name)
	assert.Equal(t, 25, standings.Rows[0].GoalDifference)
	assert.Equal(t, football.ProviderArchive, standings.Provider)

	matchday := 20
	fixtures, err := repo.Fixtures(ctx, "sa", &matchday)
	require.NoError(t, err)
	require.Len(t, fixtures, 10)
	for _, match := range fixtures {
		assert.Equal(t, 20, match.Matchday)
		assert.Equal(t, football.StatusScheduled, match.Status)
	}

	all, err := repo.Fixtures(ctx, "SA", nil)
	require.NoError(t, err)
	assert.Len(t, all, 20)

	match, err := repo.MatchByID(ctx, 16)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "Parma", match.HomeTeam.Name)
	assert.Equal(t, "Inter", match.AwayTeam.Name)
	require.NotNil(t, match.Score.FullTime.Away)
	assert.Equal(t, 2, *match.Score.FullTime.Away)
	assert.Equal(t, time.Date(2026, 1, 7, 19, 45, 0, 0, time.UTC), match.KickoffAt)

	team, err := repo.Team(ctx, 586)
	require.NoError(t, err)
	require.NotNil(t, team)
	assert.Equal(t, "Torino", team.Name)
}

func TestDatasetMissingEntriesAreNotErrors(t *testing.T) {
	repo, err := NewDatasetRepository("", logging.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	match, err := repo.MatchByID(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, match)

	team, err := repo.Team(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, team)

	standings, err := repo.Standings(ctx, "PL")
	require.NoError(t, err)
	assert.Nil(t, standings)

	fixtures, err := repo.Fixtures(ctx, "PL", nil)
	require.NoError(t, err)
	assert.NotNil(t, fixtures)
	assert.Empty(t, fixtures)
}

func TestDatasetSortsAndNormalizes(t *testing.T) {
	path := writeDataset(t, t.TempDir(), smallDataset)
	repo, err := NewDatasetRepository(path, logging.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	fixtures, err := repo.Fixtures(ctx, "SA", nil)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
	assert.Equal(t, int64(1), fixtures[0].ID)
	assert.Equal(t, football.StatusScheduled, fixtures[1].Status)

	standings, err := repo.Standings(ctx, "SA")
	require.NoError(t, err)
	require.NotNil(t, standings)
	assert.Equal(t, int64(108), standings.Rows[0].Team.ID)
	assert.Equal(t, -1, standings.Rows[1].GoalDifference)
}

func TestDatasetStandingsAreCopied(t *testing.T) {
	path := writeDataset(t, t.TempDir(), smallDataset)
	repo, err := NewDatasetRepository(path, logging.NewNop())
	require.NoError(t, err)

	first, err := repo.Standings(context.Background(), "SA")
	require.NoError(t, err)
	first.Rows[0].Points = 99

	second, err := repo.Standings(context.Background(), "SA")
	require.NoError(t, err)
	assert.Equal(t, 3, second.Rows[0].Points)
}

func TestDatasetReloadKeepsPreviousSnapshotOnError(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, smallDataset)
	repo, err := NewDatasetRepository(path, logging.NewNop())
	require.NoError(t, err)

	writeDataset(t, dir, "competitions: [this is: not valid")
	require.Error(t, repo.Reload())

	team, err := repo.Team(context.Background(), 108)
	require.NoError(t, err)
	require.NotNil(t, team)
	assert.Equal(t, "Inter", team.Name)
}

func TestDatasetRejectsBrokenDocuments(t *testing.T) {
	cases := map[string]string{
		"missing code":      "competitions:\n  - name: X\n",
		"team without id":   "competitions:\n  - code: SA\n    teams:\n      - {name: Inter}\n",
		"bad kickoff":       "competitions:\n  - code: SA\n    matches:\n      - {id: 1, kickoff_at: yesterday}\n",
		"bad updated_at":    "competitions:\n  - code: SA\n    updated_at: soon\n",
		"missing file path": "",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if content != "" {
				path = writeDataset(t, t.TempDir(), content)
			}
			_, err := NewDatasetRepository(path, logging.NewNop())
			require.Error(t, err)
		})
	}
}

func TestDatasetWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, smallDataset)
	repo, err := NewDatasetRepository(path, logging.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- repo.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	updated := smallDataset + "      - {id: 3, matchday: 3, home_team_id: 108, away_team_id: 98, kickoff_at: \"2026-01-18T20:45:00+01:00\", status: SCHEDULED}\n"

	// The watcher may not be registered yet on the first write, so keep writing.
	require.Eventually(t, func() bool {
		if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
			return false
		}
		match, err := repo.MatchByID(context.Background(), 3)
		return err == nil && match != nil
	}, 5*time.Second, 400*time.Millisecond)
}

func TestEmbeddedDatasetWatchIsNoop(t *testing.T) {
	repo, err := NewDatasetRepository("", logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, repo.Watch(context.Background()))
}
