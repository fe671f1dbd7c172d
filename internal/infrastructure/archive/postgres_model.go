package archive

import (
	"database/sql"
	"time"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
)

type teamTableModel struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	ShortName sql.NullString `db:"short_name"`
	Crest     sql.NullString `db:"crest"`
	Country   sql.NullString `db:"country"`
	Founded   sql.NullInt64  `db:"founded"`
	Venue     sql.NullString `db:"venue"`
}

type matchTableModel struct {
	ID              int64         `db:"id"`
	CompetitionCode string        `db:"competition_code"`
	CompetitionName string        `db:"competition_name"`
	Season          int           `db:"season"`
	Matchday        int           `db:"matchday"`
	HomeTeamID      int64         `db:"home_team_id"`
	HomeTeamName    string        `db:"home_team_name"`
	AwayTeamID      int64         `db:"away_team_id"`
	AwayTeamName    string        `db:"away_team_name"`
	KickoffAt       time.Time     `db:"kickoff_at"`
	Status          string        `db:"status"`
	Stage           string        `db:"stage"`
	Venue           string        `db:"venue"`
	Referee         string        `db:"referee"`
	HomeScore       sql.NullInt64 `db:"home_score"`
	AwayScore       sql.NullInt64 `db:"away_score"`
	HalfHomeScore   sql.NullInt64 `db:"half_home_score"`
	HalfAwayScore   sql.NullInt64 `db:"half_away_score"`
	SourceProvider  string        `db:"source_provider"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

type standingTableModel struct {
	CompetitionCode string         `db:"competition_code"`
	CompetitionName string         `db:"competition_name"`
	Season          int            `db:"season"`
	Position        int            `db:"position"`
	TeamID          int64          `db:"team_id"`
	TeamName        string         `db:"team_name"`
	Played          int            `db:"played"`
	Won             int            `db:"won"`
	Drawn           int            `db:"drawn"`
	Lost            int            `db:"lost"`
	GoalsFor        int            `db:"goals_for"`
	GoalsAgainst    int            `db:"goals_against"`
	GoalDifference  int            `db:"goal_difference"`
	Points          int            `db:"points"`
	Form            sql.NullString `db:"form"`
	SourceProvider  string         `db:"source_provider"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (m teamTableModel) toDomain() football.Team {
	return football.Team{
		ID:        m.ID,
		Name:      m.Name,
		ShortName: m.ShortName.String,
		Crest:     m.Crest.String,
		Country:   m.Country.String,
		Founded:   int(m.Founded.Int64),
		Venue:     m.Venue.String,
	}
}

func (m matchTableModel) toDomain() football.Match {
	return football.Match{
		ID:          m.ID,
		Competition: m.CompetitionName,
		Season:      m.Season,
		Matchday:    m.Matchday,
		HomeTeam:    football.Team{ID: m.HomeTeamID, Name: m.HomeTeamName},
		AwayTeam:    football.Team{ID: m.AwayTeamID, Name: m.AwayTeamName},
		KickoffAt:   m.KickoffAt.UTC(),
		Status:      football.NormalizeStatus(m.Status),
		Stage:       m.Stage,
		Venue:       m.Venue,
		Referee:     m.Referee,
		Score: football.Score{
			FullTime: football.ScoreLine{Home: nullIntPtr(m.HomeScore), Away: nullIntPtr(m.AwayScore)},
			HalfTime: football.ScoreLine{Home: nullIntPtr(m.HalfHomeScore), Away: nullIntPtr(m.HalfAwayScore)},
		},
		Events:    []football.Event{},
		UpdatedAt: m.UpdatedAt.UTC(),
		Provider:  football.ProviderArchive,
	}
}

func matchModelFromDomain(competition string, match football.Match, now time.Time) matchTableModel {
	return matchTableModel{
		ID:              match.ID,
		CompetitionCode: competition,
		CompetitionName: match.Competition,
		Season:          match.Season,
		Matchday:        match.Matchday,
		HomeTeamID:      match.HomeTeam.ID,
		HomeTeamName:    match.HomeTeam.Name,
		AwayTeamID:      match.AwayTeam.ID,
		AwayTeamName:    match.AwayTeam.Name,
		KickoffAt:       match.KickoffAt.UTC(),
		Status:          string(match.Status),
		Stage:           match.Stage,
		Venue:           match.Venue,
		Referee:         match.Referee,
		HomeScore:       intPtrNull(match.Score.FullTime.Home),
		AwayScore:       intPtrNull(match.Score.FullTime.Away),
		HalfHomeScore:   intPtrNull(match.Score.HalfTime.Home),
		HalfAwayScore:   intPtrNull(match.Score.HalfTime.Away),
		SourceProvider:  string(match.Provider),
		UpdatedAt:       now.UTC(),
	}
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func intPtrNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
