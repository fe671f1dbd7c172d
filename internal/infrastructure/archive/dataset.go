package archive

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
	"github.com/Amaradona-max/football-serie-a/internal/platform/logging"
)

//go:embed dataset/serie_a.yaml
var embeddedDataset []byte

const reloadDebounce = 300 * time.Millisecond

type datasetDoc struct {
	Competitions []competitionDoc `yaml:"competitions"`
}

type competitionDoc struct {
	Code      string          `yaml:"code"`
	Name      string          `yaml:"name"`
	Season    int             `yaml:"season"`
	UpdatedAt string          `yaml:"updated_at"`
	Teams     []football.Team `yaml:"teams"`
	Standings []standingDoc   `yaml:"standings"`
	Matches   []matchDoc      `yaml:"matches"`
}

type standingDoc struct {
	Position     int    `yaml:"position"`
	TeamID       int64  `yaml:"team_id"`
	Played       int    `yaml:"played"`
	Won          int    `yaml:"won"`
	Drawn        int    `yaml:"drawn"`
	Lost         int    `yaml:"lost"`
	GoalsFor     int    `yaml:"goals_for"`
	GoalsAgainst int    `yaml:"goals_against"`
	Points       int    `yaml:"points"`
	Form         string `yaml:"form"`
}

type matchDoc struct {
	ID         int64  `yaml:"id"`
	Matchday   int    `yaml:"matchday"`
	HomeTeamID int64  `yaml:"home_team_id"`
	AwayTeamID int64  `yaml:"away_team_id"`
	KickoffAt  string `yaml:"kickoff_at"`
	Status     string `yaml:"status"`
	HomeScore  *int   `yaml:"home_score"`
	AwayScore  *int   `yaml:"away_score"`
	Venue      string `yaml:"venue"`
	Referee    string `yaml:"referee"`
}

type snapshot struct {
	standings map[string]football.Standings
	fixtures  map[string][]football.Match
	matches   map[int64]football.Match
	teams     map[int64]football.Team
}

// DatasetRepository serves the archive from a YAML document held in memory.
// With a file path it can hot-reload the document on change.
type DatasetRepository struct {
	path    string
	logger  *logging.Logger
	current atomic.Pointer[snapshot]
}

var _ Repository = (*DatasetRepository)(nil)

// NewDatasetRepository loads path, or the embedded Serie A snapshot when path is empty.
func NewDatasetRepository(path string, logger *logging.Logger) (*DatasetRepository, error) {
	if logger == nil {
		logger = logging.Default()
	}
	r := &DatasetRepository{
		path:   strings.TrimSpace(path),
		logger: logger,
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads the dataset. A broken document keeps the previous snapshot.
func (r *DatasetRepository) Reload() error {
	raw := embeddedDataset
	if r.path != "" {
		content, err := os.ReadFile(r.path)
		if err != nil {
			return fmt.Errorf("read archive dataset %s: %w", r.path, err)
		}
		raw = content
	}

	snap, err := parseDataset(raw)
	if err != nil {
		return fmt.Errorf("parse archive dataset: %w", err)
	}
	r.current.Store(snap)
	return nil
}

// Watch reloads the dataset whenever its file is written, until ctx is done.
// It is a no-op for the embedded dataset.
func (r *DatasetRepository) Watch(ctx context.Context) error {
	if r.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create dataset watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("watch dataset dir: %w", err)
	}
	r.logger.InfoContext(ctx, "archive dataset watcher started", "path", r.path)

	target := filepath.Clean(r.path)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				if err := r.Reload(); err != nil {
					r.logger.WarnContext(ctx, "archive dataset reload failed, keeping previous snapshot", "path", r.path, "error", err)
					return
				}
				r.logger.InfoContext(ctx, "archive dataset reloaded", "path", r.path)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.WarnContext(ctx, "archive dataset watcher error", "error", err)
		}
	}
}

func (r *DatasetRepository) Fixtures(_ context.Context, competition string, matchday *int) ([]football.Match, error) {
	all := r.current.Load().fixtures[strings.ToUpper(competition)]
	out := make([]football.Match, 0, len(all))
	for _, match := range all {
		if matchday != nil && match.Matchday != *matchday {
			continue
		}
		out = append(out, match)
	}
	return out, nil
}

func (r *DatasetRepository) MatchByID(_ context.Context, id int64) (*football.Match, error) {
	match, ok := r.current.Load().matches[id]
	if !ok {
		return nil, nil
	}
	return &match, nil
}

func (r *DatasetRepository) Standings(_ context.Context, competition string) (*football.Standings, error) {
	standings, ok := r.current.Load().standings[strings.ToUpper(competition)]
	if !ok {
		return nil, nil
	}
	standings.Rows = append([]football.StandingRow(nil), standings.Rows...)
	return &standings, nil
}

func (r *DatasetRepository) Team(_ context.Context, id int64) (*football.Team, error) {
	team, ok := r.current.Load().teams[id]
	if !ok {
		return nil, nil
	}
	return &team, nil
}

func parseDataset(raw []byte) (*snapshot, error) {
	var doc datasetDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	snap := &snapshot{
		standings: make(map[string]football.Standings, len(doc.Competitions)),
		fixtures:  make(map[string][]football.Match, len(doc.Competitions)),
		matches:   make(map[int64]football.Match),
		teams:     make(map[int64]football.Team),
	}

	for _, comp := range doc.Competitions {
		code := strings.ToUpper(strings.TrimSpace(comp.Code))
		if code == "" {
			return nil, fmt.Errorf("competition code is required")
		}
		updatedAt, err := parseDatasetTime(comp.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("competition %s updated_at: %w", code, err)
		}

		for _, team := range comp.Teams {
			if team.ID <= 0 {
				return nil, fmt.Errorf("competition %s has team without id", code)
			}
			snap.teams[team.ID] = team
		}

		if len(comp.Standings) > 0 {
			rows := make([]football.StandingRow, 0, len(comp.Standings))
			for _, row := range comp.Standings {
				rows = append(rows, football.StandingRow{
					Position:       row.Position,
					Team:           snap.teamOrStub(row.TeamID),
					Played:         row.Played,
					Won:            row.Won,
					Drawn:          row.Drawn,
					Lost:           row.Lost,
					GoalsFor:       row.GoalsFor,
					GoalsAgainst:   row.GoalsAgainst,
					GoalDifference: row.GoalsFor - row.GoalsAgainst,
					Points:         row.Points,
					Form:           row.Form,
				})
			}
			sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
			snap.standings[code] = football.Standings{
				Competition: comp.Name,
				Season:      comp.Season,
				Rows:        rows,
				UpdatedAt:   updatedAt,
				Provider:    football.ProviderArchive,
			}
		}

		matches := make([]football.Match, 0, len(comp.Matches))
		for _, item := range comp.Matches {
			kickoff, err := parseDatasetTime(item.KickoffAt)
			if err != nil {
				return nil, fmt.Errorf("match %d kickoff_at: %w", item.ID, err)
			}
			match := football.Match{
				ID:          item.ID,
				Competition: comp.Name,
				Season:      comp.Season,
				Matchday:    item.Matchday,
				HomeTeam:    snap.teamOrStub(item.HomeTeamID),
				AwayTeam:    snap.teamOrStub(item.AwayTeamID),
				KickoffAt:   kickoff,
				Status:      football.NormalizeStatus(item.Status),
				Score: football.Score{
					FullTime: football.ScoreLine{Home: item.HomeScore, Away: item.AwayScore},
				},
				Events:    []football.Event{},
				Venue:     item.Venue,
				Referee:   item.Referee,
				UpdatedAt: updatedAt,
				Provider:  football.ProviderArchive,
			}
			matches = append(matches, match)
			snap.matches[match.ID] = match
		}
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].KickoffAt.Equal(matches[j].KickoffAt) {
				return matches[i].ID < matches[j].ID
			}
			return matches[i].KickoffAt.Before(matches[j].KickoffAt)
		})
		snap.fixtures[code] = matches
	}

	return snap, nil
}

func (s *snapshot) teamOrStub(id int64) football.Team {
	if team, ok := s.teams[id]; ok {
		return team
	}
	return football.Team{ID: id}
}

func parseDatasetTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}
