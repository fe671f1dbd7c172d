package apifootball

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
)

type envelope[T any] struct {
	// Errors is [] on success and an object keyed by field on failure.
	Errors   any `json:"errors"`
	Response []T `json:"response"`
}

func (e envelope[T]) errorMessage() string {
	switch v := e.Errors.(type) {
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s: %v", key, v[key]))
		}
		return strings.Join(parts, "; ")
	case []any:
		if len(v) == 0 {
			return ""
		}
		return fmt.Sprint(v...)
	default:
		return ""
	}
}

type fixtureItem struct {
	Fixture struct {
		ID      int64  `json:"id"`
		Referee string `json:"referee"`
		Date    string `json:"date"`
		Venue   struct {
			Name string `json:"name"`
		} `json:"venue"`
		Status struct {
			Short   string `json:"short"`
			Elapsed *int   `json:"elapsed"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Season int    `json:"season"`
		Round  string `json:"round"`
	} `json:"league"`
	Teams struct {
		Home teamRef `json:"home"`
		Away teamRef `json:"away"`
	} `json:"teams"`
	Goals scorePair `json:"goals"`
	Score struct {
		Halftime  scorePair `json:"halftime"`
		Fulltime  scorePair `json:"fulltime"`
		Extratime scorePair `json:"extratime"`
		Penalty   scorePair `json:"penalty"`
	} `json:"score"`
	Events []eventItem `json:"events"`
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type scorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type eventItem struct {
	Time struct {
		Elapsed int  `json:"elapsed"`
		Extra   *int `json:"extra"`
	} `json:"time"`
	Team   teamRef `json:"team"`
	Player struct {
		Name string `json:"name"`
	} `json:"player"`
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

type standingsItem struct {
	League struct {
		Name      string           `json:"name"`
		Season    int              `json:"season"`
		Standings [][]standingItem `json:"standings"`
	} `json:"league"`
}

type standingItem struct {
	Rank      int     `json:"rank"`
	Team      teamRef `json:"team"`
	Points    int     `json:"points"`
	GoalsDiff int     `json:"goalsDiff"`
	Form      string  `json:"form"`
	All       struct {
		Played int `json:"played"`
		Win    int `json:"win"`
		Draw   int `json:"draw"`
		Lose   int `json:"lose"`
		Goals  struct {
			For     int `json:"for"`
			Against int `json:"against"`
		} `json:"goals"`
	} `json:"all"`
}

type teamItem struct {
	Team struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Code    string `json:"code"`
		Country string `json:"country"`
		Founded *int   `json:"founded"`
		Logo    string `json:"logo"`
	} `json:"team"`
	Venue struct {
		Name string `json:"name"`
	} `json:"venue"`
}

var statusByShortCode = map[string]football.Status{
	"NS":   football.StatusScheduled,
	"TBD":  football.StatusScheduled,
	"1H":   football.StatusInPlay,
	"2H":   football.StatusInPlay,
	"ET":   football.StatusInPlay,
	"P":    football.StatusInPlay,
	"HT":   football.StatusPaused,
	"BT":   football.StatusPaused,
	"FT":   football.StatusFinished,
	"AET":  football.StatusFinished,
	"PEN":  football.StatusFinished,
	"AWD":  football.StatusFinished,
	"WO":   football.StatusFinished,
	"PST":  football.StatusPostponed,
	"SUSP": football.StatusPostponed,
	"INT":  football.StatusPostponed,
	"CANC": football.StatusCancelled,
	"ABD":  football.StatusCancelled,
	"LIVE": football.StatusLive,
}

func mapStatus(short string) football.Status {
	if status, ok := statusByShortCode[strings.ToUpper(strings.TrimSpace(short))]; ok {
		return status
	}
	return football.StatusScheduled
}

// parseRound extracts N from "Regular Season - N".
func parseRound(round string) int {
	idx := strings.LastIndex(round, "-")
	if idx < 0 {
		return 0
	}
	value, err := strconv.Atoi(strings.TrimSpace(round[idx+1:]))
	if err != nil {
		return 0
	}
	return value
}

func mapFixture(item fixtureItem, now time.Time) football.Match {
	out := football.Match{
		ID:          item.Fixture.ID,
		Competition: item.League.Name,
		Season:      item.League.Season,
		Matchday:    parseRound(item.League.Round),
		HomeTeam:    mapTeamRef(item.Teams.Home),
		AwayTeam:    mapTeamRef(item.Teams.Away),
		Status:      mapStatus(item.Fixture.Status.Short),
		Minute:      item.Fixture.Status.Elapsed,
		Stage:       item.League.Round,
		Venue:       item.Fixture.Venue.Name,
		Referee:     item.Fixture.Referee,
		Score: football.Score{
			FullTime: football.ScoreLine(item.Goals),
			HalfTime: football.ScoreLine(item.Score.Halftime),
		},
		Events:    mapEvents(item.Events),
		UpdatedAt: now.UTC(),
		Provider:  football.ProviderAPIFootball,
	}
	if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(item.Fixture.Date)); err == nil {
		out.KickoffAt = parsed.UTC()
	}
	if item.Score.Extratime.Home != nil {
		line := football.ScoreLine(item.Score.Extratime)
		out.Score.ExtraTime = &line
	}
	if item.Score.Penalty.Home != nil {
		line := football.ScoreLine(item.Score.Penalty)
		out.Score.Penalties = &line
	}
	return out
}

func mapEvents(items []eventItem) []football.Event {
	events := make([]football.Event, 0, len(items))
	for _, item := range items {
		eventType, ok := mapEventType(item.Type, item.Detail)
		if !ok {
			continue
		}
		event := football.Event{
			Minute:      item.Time.Elapsed,
			Type:        eventType,
			Team:        item.Team.Name,
			Player:      item.Player.Name,
			Description: item.Detail,
		}
		if item.Time.Extra != nil {
			event.ExtraTime = *item.Time.Extra
		}
		events = append(events, event)
	}
	return events
}

func mapEventType(kind, detail string) (football.EventType, bool) {
	detail = strings.ToLower(detail)
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "goal":
		if strings.Contains(detail, "missed") {
			return "", false
		}
		if strings.Contains(detail, "penalty") {
			return football.EventPenalty, true
		}
		return football.EventGoal, true
	case "card":
		if strings.Contains(detail, "red") || strings.Contains(detail, "second yellow") {
			return football.EventRedCard, true
		}
		return football.EventYellowCard, true
	case "subst":
		return football.EventSubstitution, true
	default:
		return "", false
	}
}

func mapTeamRef(ref teamRef) football.Team {
	return football.Team{
		ID:    ref.ID,
		Name:  ref.Name,
		Crest: ref.Logo,
	}
}

func mapTeam(item teamItem) football.Team {
	out := football.Team{
		ID:        item.Team.ID,
		Name:      item.Team.Name,
		ShortName: item.Team.Code,
		Crest:     item.Team.Logo,
		Country:   item.Team.Country,
		Venue:     item.Venue.Name,
	}
	if item.Team.Founded != nil {
		out.Founded = *item.Team.Founded
	}
	return out
}

func mapStandings(item standingsItem, now time.Time) *football.Standings {
	if len(item.League.Standings) == 0 || len(item.League.Standings[0]) == 0 {
		return nil
	}

	table := item.League.Standings[0]
	rows := make([]football.StandingRow, 0, len(table))
	for _, row := range table {
		rows = append(rows, football.StandingRow{
			Position:       row.Rank,
			Team:           mapTeamRef(row.Team),
			Played:         row.All.Played,
			Won:            row.All.Win,
			Drawn:          row.All.Draw,
			Lost:           row.All.Lose,
			GoalsFor:       row.All.Goals.For,
			GoalsAgainst:   row.All.Goals.Against,
			GoalDifference: row.GoalsDiff,
			Points:         row.Points,
			Form:           row.Form,
		})
	}

	return &football.Standings{
		Competition: item.League.Name,
		Season:      item.League.Season,
		Rows:        rows,
		UpdatedAt:   now.UTC(),
		Provider:    football.ProviderAPIFootball,
	}
}
