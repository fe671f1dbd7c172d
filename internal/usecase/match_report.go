package usecase

import (
	"sort"
	"strconv"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
)

const (
	cardYellow = "yellow"
	cardRed    = "red"
)

// MatchIncident is one goal or booking in a match report.
type MatchIncident struct {
	Player string `json:"player,omitempty"`
	Minute string `json:"minute"`
	Team   string `json:"team"`
	Card   string `json:"card,omitempty"`
}

type FinishedMatchReport struct {
	MatchID  int64           `json:"match_id"`
	HomeTeam string          `json:"home_team"`
	AwayTeam string          `json:"away_team"`
	Score    *string         `json:"score"`
	Date     string          `json:"date"`
	Matchday int             `json:"matchday"`
	Goals    []MatchIncident `json:"goals"`
	Cards    []MatchIncident `json:"cards"`
}

type CardsSummary struct {
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
}

type LiveMatchCard struct {
	MatchID      int64           `json:"match_id"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Status       football.Status `json:"status"`
	Minute       *int            `json:"minute,omitempty"`
	Score        *string         `json:"score"`
	CardsSummary CardsSummary    `json:"cards_summary"`
}

// FinishedMatchReports keeps the finished matches and lists their goals and
// bookings, newest first.
func FinishedMatchReports(matches []football.Match) []FinishedMatchReport {
	out := make([]FinishedMatchReport, 0, len(matches))
	for _, match := range matches {
		if match.Status != football.StatusFinished {
			continue
		}

		report := FinishedMatchReport{
			MatchID:  match.ID,
			HomeTeam: match.HomeTeam.Name,
			AwayTeam: match.AwayTeam.Name,
			Score:    fullTimeScore(match.Score),
			Date:     match.KickoffAt.UTC().Format("2006-01-02"),
			Matchday: match.Matchday,
			Goals:    []MatchIncident{},
			Cards:    []MatchIncident{},
		}
		for _, event := range match.Events {
			incident := MatchIncident{
				Player: event.Player,
				Minute: eventMinute(event),
				Team:   event.Team,
			}
			switch event.Type {
			case football.EventGoal, football.EventPenalty:
				report.Goals = append(report.Goals, incident)
			case football.EventYellowCard:
				incident.Card = cardYellow
				report.Cards = append(report.Cards, incident)
			case football.EventRedCard:
				incident.Card = cardRed
				report.Cards = append(report.Cards, incident)
			}
		}
		out = append(out, report)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].MatchID > out[j].MatchID
	})
	return out
}

// LiveMatchCards summarises in-play matches: score, minute and bookings.
func LiveMatchCards(matches []football.Match) []LiveMatchCard {
	out := make([]LiveMatchCard, 0, len(matches))
	for _, match := range matches {
		card := LiveMatchCard{
			MatchID:  match.ID,
			HomeTeam: match.HomeTeam.Name,
			AwayTeam: match.AwayTeam.Name,
			Status:   match.Status,
			Minute:   match.Minute,
			Score:    fullTimeScore(match.Score),
		}
		for _, event := range match.Events {
			switch event.Type {
			case football.EventYellowCard:
				card.CardsSummary.Yellow++
			case football.EventRedCard:
				card.CardsSummary.Red++
			}
		}
		out = append(out, card)
	}
	return out
}

func fullTimeScore(score football.Score) *string {
	if score.FullTime.Home == nil || score.FullTime.Away == nil {
		return nil
	}
	value := strconv.Itoa(*score.FullTime.Home) + "-" + strconv.Itoa(*score.FullTime.Away)
	return &value
}

func eventMinute(event football.Event) string {
	minute := strconv.Itoa(event.Minute)
	if event.ExtraTime != 0 {
		minute += "+" + strconv.Itoa(event.ExtraTime)
	}
	return minute
}
