package football

import (
	"strings"
	"time"
)

// Status is the normalized lifecycle state of a match.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusLive      Status = "LIVE"
	StatusInPlay    Status = "IN_PLAY"
	StatusPaused    Status = "PAUSED"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
	StatusCancelled Status = "CANCELLED"
)

func NormalizeStatus(value string) Status {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case StatusScheduled, StatusLive, StatusInPlay, StatusPaused, StatusFinished, StatusPostponed, StatusCancelled:
		return status
	case "TIMED":
		return StatusScheduled
	case "SUSPENDED":
		return StatusPostponed
	default:
		return StatusScheduled
	}
}

func (s Status) IsLive() bool {
	switch s {
	case StatusLive, StatusInPlay, StatusPaused:
		return true
	default:
		return false
	}
}

type EventType string

const (
	EventGoal         EventType = "GOAL"
	EventYellowCard   EventType = "YELLOW_CARD"
	EventRedCard      EventType = "RED_CARD"
	EventSubstitution EventType = "SUBSTITUTION"
	EventPenalty      EventType = "PENALTY"
	EventCorner       EventType = "CORNER"
	EventFoul         EventType = "FOUL"
	EventOffside      EventType = "OFFSIDE"
)

// Team is a club as reported by a provider.
type Team struct {
	ID        int64  `json:"id" yaml:"id" db:"id"`
	Name      string `json:"name" yaml:"name" db:"name"`
	ShortName string `json:"short_name,omitempty" yaml:"short_name" db:"short_name"`
	Crest     string `json:"crest,omitempty" yaml:"crest" db:"crest"`
	Country   string `json:"country,omitempty" yaml:"country" db:"country"`
	Founded   int    `json:"founded,omitempty" yaml:"founded" db:"founded"`
	Venue     string `json:"venue,omitempty" yaml:"venue" db:"venue"`
}

// ScoreLine is one home/away goal pair. Nil pointers mean "not played yet".
type ScoreLine struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type Score struct {
	FullTime  ScoreLine  `json:"full_time"`
	HalfTime  ScoreLine  `json:"half_time"`
	ExtraTime *ScoreLine `json:"extra_time,omitempty"`
	Penalties *ScoreLine `json:"penalties,omitempty"`
}

type Event struct {
	Minute      int       `json:"minute"`
	ExtraTime   int       `json:"extra_time,omitempty"`
	Type        EventType `json:"type"`
	Team        string    `json:"team"`
	Player      string    `json:"player,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Match is the unified shape every provider maps its fixtures into.
type Match struct {
	ID          int64        `json:"id"`
	Competition string       `json:"competition"`
	Season      int          `json:"season"`
	Matchday    int          `json:"matchday"`
	HomeTeam    Team         `json:"home_team"`
	AwayTeam    Team         `json:"away_team"`
	KickoffAt   time.Time    `json:"utc_date"`
	Status      Status       `json:"status"`
	Minute      *int         `json:"minute,omitempty"`
	Stage       string       `json:"stage,omitempty"`
	Group       string       `json:"group,omitempty"`
	Score       Score        `json:"score"`
	Events      []Event      `json:"events"`
	Venue       string       `json:"venue,omitempty"`
	Referee     string       `json:"referee,omitempty"`
	Attendance  int          `json:"attendance,omitempty"`
	UpdatedAt   time.Time    `json:"last_updated"`
	Provider    ProviderName `json:"data_provider"`
}

// StandingRow is one team's line in a league table.
type StandingRow struct {
	Position       int    `json:"position"`
	Team           Team   `json:"team"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
	Form           string `json:"form,omitempty"`
}

type Standings struct {
	Competition string        `json:"competition"`
	Season      int           `json:"season"`
	Rows        []StandingRow `json:"standings"`
	UpdatedAt   time.Time     `json:"last_updated"`
	Provider    ProviderName  `json:"data_provider"`
}
