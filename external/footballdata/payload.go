package footballdata

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
)

type matchesEnvelope struct {
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	ID          int64          `json:"id"`
	UTCDate     string         `json:"utcDate"`
	Status      string         `json:"status"`
	Minute      *int           `json:"minute"`
	Matchday    *int           `json:"matchday"`
	Stage       string         `json:"stage"`
	Group       *string        `json:"group"`
	LastUpdated string         `json:"lastUpdated"`
	Venue       string         `json:"venue"`
	Attendance  *int           `json:"attendance"`
	Competition competitionRef `json:"competition"`
	Season      seasonRef      `json:"season"`
	HomeTeam    teamItem       `json:"homeTeam"`
	AwayTeam    teamItem       `json:"awayTeam"`
	Score       scoreItem      `json:"score"`
	Referees    []personRef    `json:"referees"`
	Goals       []goalItem     `json:"goals"`
	Bookings    []bookingItem  `json:"bookings"`
	Subs        []subItem      `json:"substitutions"`
}

type competitionRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type seasonRef struct {
	StartDate       string `json:"startDate"`
	CurrentMatchday *int   `json:"currentMatchday"`
}

type teamItem struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	ShortName string   `json:"shortName"`
	TLA       string   `json:"tla"`
	Crest     string   `json:"crest"`
	Founded   *int     `json:"founded"`
	Venue     string   `json:"venue"`
	Area      *areaRef `json:"area"`
}

type areaRef struct {
	Name string `json:"name"`
}

type personRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type scoreLine struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type scoreItem struct {
	FullTime  scoreLine  `json:"fullTime"`
	HalfTime  scoreLine  `json:"halfTime"`
	ExtraTime *scoreLine `json:"extraTime"`
	Penalties *scoreLine `json:"penalties"`
}

type goalItem struct {
	Minute     int       `json:"minute"`
	InjuryTime *int      `json:"injuryTime"`
	Type       string    `json:"type"`
	Team       personRef `json:"team"`
	Scorer     personRef `json:"scorer"`
}

type bookingItem struct {
	Minute int       `json:"minute"`
	Team   personRef `json:"team"`
	Player personRef `json:"player"`
	Card   string    `json:"card"`
}

type subItem struct {
	Minute    int       `json:"minute"`
	Team      personRef `json:"team"`
	PlayerOut personRef `json:"playerOut"`
	PlayerIn  personRef `json:"playerIn"`
}

type standingsEnvelope struct {
	Competition competitionRef  `json:"competition"`
	Season      seasonRef       `json:"season"`
	Standings   []standingTable `json:"standings"`
}

type standingTable struct {
	Type  string         `json:"type"`
	Table []standingItem `json:"table"`
}

type standingItem struct {
	Position       int      `json:"position"`
	Team           teamItem `json:"team"`
	PlayedGames    int      `json:"playedGames"`
	Form           *string  `json:"form"`
	Won            int      `json:"won"`
	Draw           int      `json:"draw"`
	Lost           int      `json:"lost"`
	Points         int      `json:"points"`
	GoalsFor       int      `json:"goalsFor"`
	GoalsAgainst   int      `json:"goalsAgainst"`
	GoalDifference int      `json:"goalDifference"`
}

func mapMatch(item matchItem, now time.Time) football.Match {
	out := football.Match{
		ID:          item.ID,
		Competition: firstNonEmpty(item.Competition.Name, item.Competition.Code),
		Season:      seasonYear(item.Season.StartDate),
		HomeTeam:    mapTeam(item.HomeTeam),
		AwayTeam:    mapTeam(item.AwayTeam),
		KickoffAt:   parseTime(item.UTCDate),
		Status:      football.NormalizeStatus(item.Status),
		Minute:      item.Minute,
		Stage:       item.Stage,
		Venue:       item.Venue,
		Score: football.Score{
			FullTime:  football.ScoreLine(item.Score.FullTime),
			HalfTime:  football.ScoreLine(item.Score.HalfTime),
			ExtraTime: (*football.ScoreLine)(item.Score.ExtraTime),
			Penalties: (*football.ScoreLine)(item.Score.Penalties),
		},
		Events:    mapEvents(item),
		UpdatedAt: now.UTC(),
		Provider:  football.ProviderFootballData,
	}
	if item.Matchday != nil {
		out.Matchday = *item.Matchday
	}
	if item.Group != nil {
		out.Group = *item.Group
	}
	if item.Attendance != nil {
		out.Attendance = *item.Attendance
	}
	if len(item.Referees) > 0 {
		out.Referee = item.Referees[0].Name
	}
	return out
}

func mapEvents(item matchItem) []football.Event {
	events := make([]football.Event, 0, len(item.Goals)+len(item.Bookings)+len(item.Subs))
	for _, goal := range item.Goals {
		eventType := football.EventGoal
		if strings.EqualFold(goal.Type, "PENALTY") {
			eventType = football.EventPenalty
		}
		event := football.Event{
			Minute:      goal.Minute,
			Type:        eventType,
			Team:        goal.Team.Name,
			Player:      goal.Scorer.Name,
			Description: goal.Type,
		}
		if goal.InjuryTime != nil {
			event.ExtraTime = *goal.InjuryTime
		}
		events = append(events, event)
	}
	for _, booking := range item.Bookings {
		eventType := football.EventYellowCard
		if strings.Contains(strings.ToUpper(booking.Card), "RED") {
			eventType = football.EventRedCard
		}
		events = append(events, football.Event{
			Minute:      booking.Minute,
			Type:        eventType,
			Team:        booking.Team.Name,
			Player:      booking.Player.Name,
			Description: booking.Card,
		})
	}
	for _, sub := range item.Subs {
		events = append(events, football.Event{
			Minute:      sub.Minute,
			Type:        football.EventSubstitution,
			Team:        sub.Team.Name,
			Player:      sub.PlayerIn.Name,
			Description: strings.TrimSpace(sub.PlayerOut.Name + " off"),
		})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Minute < events[j].Minute })
	return events
}

func mapTeam(item teamItem) football.Team {
	out := football.Team{
		ID:        item.ID,
		Name:      item.Name,
		ShortName: firstNonEmpty(item.ShortName, item.TLA),
		Crest:     item.Crest,
		Venue:     item.Venue,
	}
	if item.Founded != nil {
		out.Founded = *item.Founded
	}
	if item.Area != nil {
		out.Country = item.Area.Name
	}
	return out
}

func mapStandings(env standingsEnvelope, now time.Time) *football.Standings {
	var table []standingItem
	for _, candidate := range env.Standings {
		if strings.EqualFold(candidate.Type, "TOTAL") {
			table = candidate.Table
			break
		}
	}
	if table == nil && len(env.Standings) > 0 {
		table = env.Standings[0].Table
	}
	if len(table) == 0 {
		return nil
	}

	rows := make([]football.StandingRow, 0, len(table))
	for _, item := range table {
		row := football.StandingRow{
			Position:       item.Position,
			Team:           mapTeam(item.Team),
			Played:         item.PlayedGames,
			Won:            item.Won,
			Drawn:          item.Draw,
			Lost:           item.Lost,
			GoalsFor:       item.GoalsFor,
			GoalsAgainst:   item.GoalsAgainst,
			GoalDifference: item.GoalDifference,
			Points:         item.Points,
		}
		if item.Form != nil {
			row.Form = strings.ReplaceAll(*item.Form, ",", "")
		}
		rows = append(rows, row)
	}

	return &football.Standings{
		Competition: firstNonEmpty(env.Competition.Name, env.Competition.Code),
		Season:      seasonYear(env.Season.StartDate),
		Rows:        rows,
		UpdatedAt:   now.UTC(),
		Provider:    football.ProviderFootballData,
	}
}

func parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}

func seasonYear(startDate string) int {
	if len(startDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(startDate[:4])
	if err != nil {
		return 0
	}
	return year
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
