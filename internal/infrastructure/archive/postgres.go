package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
)

const (
	selectMatchColumns = `id, competition_code, competition_name, season, matchday,
		home_team_id, home_team_name, away_team_id, away_team_name, kickoff_at, status,
		stage, venue, referee, home_score, away_score, half_home_score, half_away_score,
		source_provider, updated_at`

	upsertTeamSQL = `INSERT INTO archive_teams (id, name, short_name, crest, country, founded, venue)
		VALUES (:id, :name, :short_name, :crest, :country, :founded, :venue)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			short_name = COALESCE(EXCLUDED.short_name, archive_teams.short_name),
			crest = COALESCE(EXCLUDED.crest, archive_teams.crest),
			country = COALESCE(EXCLUDED.country, archive_teams.country),
			founded = COALESCE(EXCLUDED.founded, archive_teams.founded),
			venue = COALESCE(EXCLUDED.venue, archive_teams.venue)`

	upsertMatchSQL = `INSERT INTO archive_matches (` + selectMatchColumns + `)
		VALUES (:id, :competition_code, :competition_name, :season, :matchday,
			:home_team_id, :home_team_name, :away_team_id, :away_team_name, :kickoff_at, :status,
			:stage, :venue, :referee, :home_score, :away_score, :half_home_score, :half_away_score,
			:source_provider, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			matchday = EXCLUDED.matchday,
			kickoff_at = EXCLUDED.kickoff_at,
			status = EXCLUDED.status,
			venue = EXCLUDED.venue,
			referee = EXCLUDED.referee,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			half_home_score = EXCLUDED.half_home_score,
			half_away_score = EXCLUDED.half_away_score,
			source_provider = EXCLUDED.source_provider,
			updated_at = EXCLUDED.updated_at`

	upsertStandingSQL = `INSERT INTO archive_standings (competition_code, competition_name, season, position,
			team_id, team_name, played, won, drawn, lost, goals_for, goals_against, goal_difference,
			points, form, source_provider, updated_at)
		VALUES (:competition_code, :competition_name, :season, :position,
			:team_id, :team_name, :played, :won, :drawn, :lost, :goals_for, :goals_against, :goal_difference,
			:points, :form, :source_provider, :updated_at)
		ON CONFLICT (competition_code, season, team_id) DO UPDATE SET
			position = EXCLUDED.position,
			played = EXCLUDED.played,
			won = EXCLUDED.won,
			drawn = EXCLUDED.drawn,
			lost = EXCLUDED.lost,
			goals_for = EXCLUDED.goals_for,
			goals_against = EXCLUDED.goals_against,
			goal_difference = EXCLUDED.goal_difference,
			points = EXCLUDED.points,
			form = EXCLUDED.form,
			source_provider = EXCLUDED.source_provider,
			updated_at = EXCLUDED.updated_at`
)

// PostgresRepository stores the archive in Postgres tables created by db/migrations.
type PostgresRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

var (
	_ Repository = (*PostgresRepository)(nil)
	_ Writer     = (*PostgresRepository)(nil)
)

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

func (r *PostgresRepository) Fixtures(ctx context.Context, competition string, matchday *int) ([]football.Match, error) {
	query := `SELECT ` + selectMatchColumns + ` FROM archive_matches WHERE competition_code = $1`
	args := []any{competition}
	if matchday != nil {
		query += ` AND matchday = $2`
		args = append(args, *matchday)
	}
	query += ` ORDER BY kickoff_at, id`

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select archive fixtures: %w", err)
	}

	out := make([]football.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PostgresRepository) MatchByID(ctx context.Context, id int64) (*football.Match, error) {
	var row matchTableModel
	err := r.db.GetContext(ctx, &row, `SELECT `+selectMatchColumns+` FROM archive_matches WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select archive match id=%d: %w", id, err)
	}
	match := row.toDomain()
	return &match, nil
}

func (r *PostgresRepository) Standings(ctx context.Context, competition string) (*football.Standings, error) {
	query := `SELECT competition_code, competition_name, season, position, team_id, team_name,
			played, won, drawn, lost, goals_for, goals_against, goal_difference, points, form,
			source_provider, updated_at
		FROM archive_standings
		WHERE competition_code = $1
			AND season = (SELECT MAX(season) FROM archive_standings WHERE competition_code = $1)
		ORDER BY position`

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, competition); err != nil {
		return nil, fmt.Errorf("select archive standings: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	out := &football.Standings{
		Competition: rows[0].CompetitionName,
		Season:      rows[0].Season,
		Rows:        make([]football.StandingRow, 0, len(rows)),
		Provider:    football.ProviderArchive,
	}
	for _, row := range rows {
		if row.UpdatedAt.After(out.UpdatedAt) {
			out.UpdatedAt = row.UpdatedAt.UTC()
		}
		out.Rows = append(out.Rows, football.StandingRow{
			Position:       row.Position,
			Team:           football.Team{ID: row.TeamID, Name: row.TeamName},
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
			Form:           row.Form.String,
		})
	}
	return out, nil
}

func (r *PostgresRepository) Team(ctx context.Context, id int64) (*football.Team, error) {
	var row teamTableModel
	err := r.db.GetContext(ctx, &row, `SELECT id, name, short_name, crest, country, founded, venue FROM archive_teams WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select archive team id=%d: %w", id, err)
	}
	team := row.toDomain()
	return &team, nil
}

func (r *PostgresRepository) SaveMatches(ctx context.Context, competition string, matches []football.Match) error {
	if len(matches) == 0 {
		return nil
	}
	competition = strings.ToUpper(strings.TrimSpace(competition))
	now := r.now()

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, match := range matches {
			for _, team := range []football.Team{match.HomeTeam, match.AwayTeam} {
				if err := upsertTeam(ctx, tx, team); err != nil {
					return err
				}
			}
			if _, err := tx.NamedExecContext(ctx, upsertMatchSQL, matchModelFromDomain(competition, match, now)); err != nil {
				return fmt.Errorf("upsert archive match id=%d: %w", match.ID, err)
			}
		}
		return nil
	})
}

func (r *PostgresRepository) SaveStandings(ctx context.Context, competition string, standings football.Standings) error {
	if len(standings.Rows) == 0 {
		return nil
	}
	competition = strings.ToUpper(strings.TrimSpace(competition))
	now := r.now().UTC()

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, row := range standings.Rows {
			if err := upsertTeam(ctx, tx, row.Team); err != nil {
				return err
			}
			model := standingTableModel{
				CompetitionCode: competition,
				CompetitionName: standings.Competition,
				Season:          standings.Season,
				Position:        row.Position,
				TeamID:          row.Team.ID,
				TeamName:        row.Team.Name,
				Played:          row.Played,
				Won:             row.Won,
				Drawn:           row.Drawn,
				Lost:            row.Lost,
				GoalsFor:        row.GoalsFor,
				GoalsAgainst:    row.GoalsAgainst,
				GoalDifference:  row.GoalDifference,
				Points:          row.Points,
				Form:            sql.NullString{String: row.Form, Valid: row.Form != ""},
				SourceProvider:  string(standings.Provider),
				UpdatedAt:       now,
			}
			if _, err := tx.NamedExecContext(ctx, upsertStandingSQL, model); err != nil {
				return fmt.Errorf("upsert archive standing team_id=%d: %w", row.Team.ID, err)
			}
		}
		return nil
	})
}

func (r *PostgresRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive tx: %w", err)
	}
	return nil
}

func upsertTeam(ctx context.Context, tx *sqlx.Tx, team football.Team) error {
	if team.ID <= 0 || strings.TrimSpace(team.Name) == "" {
		return nil
	}
	model := teamTableModel{
		ID:        team.ID,
		Name:      team.Name,
		ShortName: nullString(team.ShortName),
		Crest:     nullString(team.Crest),
		Country:   nullString(team.Country),
		Founded:   sql.NullInt64{Int64: int64(team.Founded), Valid: team.Founded > 0},
		Venue:     nullString(team.Venue),
	}
	if _, err := tx.NamedExecContext(ctx, upsertTeamSQL, model); err != nil {
		return fmt.Errorf("upsert archive team id=%d: %w", team.ID, err)
	}
	return nil
}

func nullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}
