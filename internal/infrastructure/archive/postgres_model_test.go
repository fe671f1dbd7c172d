package archive

import (
	"database/sql"
	"testing"
	"time"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
)

func TestMatchModelRoundTripKeepsNullScores(t *testing.T) {
	home := 2
	now := time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC)
	match := football.Match{
		ID:          42,
		Competition: "Serie A",
		Season:      2025,
		Matchday:    19,
		HomeTeam:    football.Team{ID: 108, Name: "Inter"},
		AwayTeam:    football.Team{ID: 98, Name: "Milan"},
		KickoffAt:   time.Date(2026, 1, 7, 20, 45, 0, 0, time.FixedZone("CET", 3600)),
		Status:      football.StatusInPlay,
		Score:       football.Score{FullTime: football.ScoreLine{Home: &home}},
		Provider:    football.ProviderFootballData,
	}

	model := matchModelFromDomain("SA", match, now)
	if model.SourceProvider != "football_data" {
		t.Fatalf("unexpected source provider: %q", model.SourceProvider)
	}
	if model.AwayScore.Valid {
		t.Fatalf("expected null away score")
	}
	if model.KickoffAt.Location() != time.UTC {
		t.Fatalf("expected kickoff stored in UTC")
	}

	got := model.toDomain()
	if got.Provider != football.ProviderArchive {
		t.Fatalf("archive rows must report the archive provider, got %q", got.Provider)
	}
	if got.Score.FullTime.Home == nil || *got.Score.FullTime.Home != 2 {
		t.Fatalf("unexpected home score: %v", got.Score.FullTime.Home)
	}
	if got.Score.FullTime.Away != nil {
		t.Fatalf("expected nil away score")
	}
	if got.Events == nil {
		t.Fatalf("expected empty events slice")
	}
	if got.HomeTeam.Name != "Inter" || got.AwayTeam.ID != 98 {
		t.Fatalf("unexpected teams: %+v vs %+v", got.HomeTeam, got.AwayTeam)
	}
}

func TestTeamModelToDomain(t *testing.T) {
	model := teamTableModel{
		ID:      108,
		Name:    "Inter",
		Crest:   sql.NullString{String: "https://crests/108.png", Valid: true},
		Founded: sql.NullInt64{Int64: 1908, Valid: true},
	}
	team := model.toDomain()
	if team.Founded != 1908 || team.Crest == "" || team.ShortName != "" {
		t.Fatalf("unexpected team: %+v", team)
	}
}

func TestNullString(t *testing.T) {
	if got := nullString("   "); got.Valid {
		t.Fatalf("expected blank string to be null")
	}
	if got := nullString(" INT "); !got.Valid || got.String != "INT" {
		t.Fatalf("unexpected value: %+v", got)
	}
}
