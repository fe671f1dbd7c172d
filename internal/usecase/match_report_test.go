package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
)

func intPtr(v int) *int { return &v }

func reportMatch(id int64, status football.Status, kickoff time.Time, events ...football.Event) football.Match {
	return football.Match{
		ID:        id,
		Matchday:  20,
		HomeTeam:  football.Team{Name: "Inter"},
		AwayTeam:  football.Team{Name: "Napoli"},
		KickoffAt: kickoff,
		Status:    status,
		Score:     football.Score{FullTime: football.ScoreLine{Home: intPtr(2), Away: intPtr(1)}},
		Events:    events,
	}
}

func TestFinishedMatchReports(t *testing.T) {
	saturday := time.Date(2026, 1, 10, 17, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 1, 11, 19, 45, 0, 0, time.UTC)

	matches := []football.Match{
		reportMatch(10, football.StatusFinished, saturday),
		reportMatch(11, football.StatusInPlay, sunday),
		reportMatch(12, football.StatusFinished, sunday,
			football.Event{Minute: 34, Type: football.EventGoal, Team: "Inter", Player: "Lautaro Martinez"},
			football.Event{Minute: 45, ExtraTime: 2, Type: football.EventPenalty, Team: "Napoli", Player: "Lukaku"},
			football.Event{Minute: 12, Type: football.EventYellowCard, Team: "Napoli", Player: "Lobotka"},
			football.Event{Minute: 88, Type: football.EventRedCard, Team: "Inter", Player: "Acerbi"},
			football.Event{Minute: 60, Type: football.EventSubstitution, Team: "Inter"},
		),
		reportMatch(13, football.StatusFinished, sunday),
	}

	reports := FinishedMatchReports(matches)
	require.Len(t, reports, 3)
	assert.Equal(t, []int64{13, 12, 10}, []int64{reports[0].MatchID, reports[1].MatchID, reports[2].MatchID})

	report := reports[1]
	assert.Equal(t, "2026-01-11", report.Date)
	require.NotNil(t, report.Score)
	assert.Equal(t, "2-1", *report.Score)
	assert.Equal(t, []MatchIncident{
		{Player: "Lautaro Martinez", Minute: "34", Team: "Inter"},
		{Player: "Lukaku", Minute: "45+2", Team: "Napoli"},
	}, report.Goals)
	assert.Equal(t, []MatchIncident{
		{Player: "Lobotka", Minute: "12", Team: "Napoli", Card: "yellow"},
		{Player: "Acerbi", Minute: "88", Team: "Inter", Card: "red"},
	}, report.Cards)

	assert.NotNil(t, reports[0].Goals)
	assert.Empty(t, reports[0].Goals)
}

func TestFinishedMatchReportsUnknownScore(t *testing.T) {
	match := reportMatch(1, football.StatusFinished, time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC))
	match.Score.FullTime.Away = nil

	reports := FinishedMatchReports([]football.Match{match})
	require.Len(t, reports, 1)
	assert.Nil(t, reports[0].Score)

	assert.NotNil(t, FinishedMatchReports(nil))
}

func TestLiveMatchCards(t *testing.T) {
	match := reportMatch(7, football.StatusInPlay, time.Date(2026, 1, 11, 19, 45, 0, 0, time.UTC),
		football.Event{Minute: 12, Type: football.EventYellowCard, Team: "Napoli"},
		football.Event{Minute: 50, Type: football.EventYellowCard, Team: "Inter"},
		football.Event{Minute: 70, Type: football.EventRedCard, Team: "Napoli"},
		football.Event{Minute: 34, Type: football.EventGoal, Team: "Inter"},
	)
	match.Minute = intPtr(72)

	cards := LiveMatchCards([]football.Match{match})
	require.Len(t, cards, 1)
	card := cards[0]
	assert.Equal(t, int64(7), card.MatchID)
	assert.Equal(t, football.StatusInPlay, card.Status)
	assert.Equal(t, 72, *card.Minute)
	assert.Equal(t, "2-1", *card.Score)
	assert.Equal(t, CardsSummary{Yellow: 2, Red: 1}, card.CardsSummary)

	assert.Empty(t, LiveMatchCards([]football.Match{}))
}
