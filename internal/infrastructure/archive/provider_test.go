package archive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
)

type recordingRepository struct {
	competitions []string
}

func (r *recordingRepository) Fixtures(_ context.Context, competition string, _ *int) ([]football.Match, error) {
	r.competitions = append(r.competitions, competition)
	return []football.Match{}, nil
}

func (r *recordingRepository) MatchByID(context.Context, int64) (*football.Match, error) {
	return nil, nil
}

func (r *recordingRepository) Standings(_ context.Context, competition string) (*football.Standings, error) {
	r.competitions = append(r.competitions, competition)
	return nil, nil
}

func (r *recordingRepository) Team(context.Context, int64) (*football.Team, error) {
	return nil, nil
}

func TestProviderNeverReportsLiveMatches(t *testing.T) {
	provider := NewProvider(&recordingRepository{}, "")

	live, err := provider.LiveMatches(context.Background(), "SA")
	require.NoError(t, err)
	assert.NotNil(t, live)
	assert.Empty(t, live)
	assert.Equal(t, football.ProviderArchive, provider.Name())
}

func TestProviderAppliesDefaultCompetition(t *testing.T) {
	repo := &recordingRepository{}
	provider := NewProvider(repo, " sa ")

	_, err := provider.Fixtures(context.Background(), "", nil)
	require.NoError(t, err)
	_, err = provider.Standings(context.Background(), "pl")
	require.NoError(t, err)

	assert.Equal(t, []string{"SA", "PL"}, repo.competitions)
}

func TestProviderOverEmbeddedDataset(t *testing.T) {
	repo, err := NewDatasetRepository("", nil)
	require.NoError(t, err)
	provider := NewProvider(repo, "SA")

	standings, err := provider.Standings(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, standings)
	assert.Equal(t, "Serie A", standings.Competition)
}
