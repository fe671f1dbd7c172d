package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
	"github.com/Amaradona-max/football-serie-a/internal/platform/cache"
	"github.com/Amaradona-max/football-serie-a/internal/platform/logging"
	"github.com/Amaradona-max/football-serie-a/internal/platform/resilience"
)

const (
	operationLiveMatches = "live_matches"
	operationFixtures    = "fixtures"
	operationMatch       = "match"
	operationStandings   = "standings"
	operationTeam        = "team"

	fallbackStaleCache  = "stale_cache"
	fallbackEmptyResult = "empty_result"

	minMatchday = 1
	maxMatchday = 38
)

var competitionCodePattern = regexp.MustCompile(`^[A-Z0-9]{2,10}$`)

// DataObserver receives fire-and-forget events from the data service.
// metrics.Recorder satisfies it.
type DataObserver interface {
	CacheLookup(operation, result string)
	ProviderCall(provider, operation string, err error, elapsed time.Duration)
	FallbackActivated(operation, fallbackType string)
}

type noopObserver struct{}

func (noopObserver) CacheLookup(string, string)                        {}
func (noopObserver) ProviderCall(string, string, error, time.Duration) {}
func (noopObserver) FallbackActivated(string, string)                  {}

// Origin tells where a query result came from.
type Origin string

const (
	OriginCache      Origin = "cache"
	OriginProvider   Origin = "provider"
	OriginStaleCache Origin = "stale_cache"
	OriginNone       Origin = "none"
)

type FootballDataServiceConfig struct {
	DefaultCompetition string
	LiveTTL            time.Duration
	StaticTTL          time.Duration
	Retry              resilience.RetryPolicy
}

func DefaultFootballDataServiceConfig() FootballDataServiceConfig {
	return FootballDataServiceConfig{
		DefaultCompetition: "SA",
		LiveTTL:            300 * time.Second,
		StaticTTL:          86400 * time.Second,
		Retry:              resilience.NewRetryPolicy(resilience.DefaultRetryConfig()),
	}
}

// FootballDataService is the single entry point for football data. Every
// query reads the cache, then walks the providers in priority order behind
// their circuit breakers, and finally falls back to stale cache or an empty
// result. Data unavailability is never an error.
type FootballDataService struct {
	cfg       FootballDataServiceConfig
	providers []football.Provider
	breakers  *resilience.BreakerRegistry
	cache     *cache.Cache
	observer  DataObserver
	logger    *logging.Logger
	now       func() time.Time
}

func NewFootballDataService(
	cfg FootballDataServiceConfig,
	providers []football.Provider,
	breakers *resilience.BreakerRegistry,
	dataCache *cache.Cache,
	observer DataObserver,
	logger *logging.Logger,
) *FootballDataService {
	defaults := DefaultFootballDataServiceConfig()
	cfg.DefaultCompetition = strings.ToUpper(strings.TrimSpace(cfg.DefaultCompetition))
	if cfg.DefaultCompetition == "" {
		cfg.DefaultCompetition = defaults.DefaultCompetition
	}
	if cfg.LiveTTL <= 0 {
		cfg.LiveTTL = defaults.LiveTTL
	}
	if cfg.StaticTTL <= 0 {
		cfg.StaticTTL = defaults.StaticTTL
	}
	if observer == nil {
		observer = noopObserver{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &FootballDataService{
		cfg:       cfg,
		providers: append([]football.Provider(nil), providers...),
		breakers:  breakers,
		cache:     dataCache,
		observer:  observer,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock replaces the clock used for date-stamped cache keys.
func (s *FootballDataService) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

func (s *FootballDataService) DefaultCompetition() string {
	return s.cfg.DefaultCompetition
}

// Providers lists provider names in fallback order.
func (s *FootballDataService) Providers() []football.ProviderName {
	out := make([]football.ProviderName, 0, len(s.providers))
	for _, provider := range s.providers {
		out = append(out, provider.Name())
	}
	return out
}

// BreakerSnapshot reports the breaker of every provider in fallback order.
func (s *FootballDataService) BreakerSnapshot() []resilience.BreakerStatus {
	if s.breakers == nil {
		return []resilience.BreakerStatus{}
	}
	return s.breakers.Snapshot()
}

// LiveMatches returns in-play matches. An empty list from a provider is a
// valid answer and ends the fallback chain.
func (s *FootballDataService) LiveMatches(ctx context.Context, competition string) ([]football.Match, error) {
	out, _, err := s.liveMatches(ctx, competition, false)
	return out, err
}

// RefreshLiveMatches re-queries providers without reading the fresh cache.
func (s *FootballDataService) RefreshLiveMatches(ctx context.Context, competition string) ([]football.Match, Origin, error) {
	return s.liveMatches(ctx, competition, true)
}

func (s *FootballDataService) liveMatches(ctx context.Context, competition string, skipFresh bool) ([]football.Match, Origin, error) {
	code, err := s.normalizeCompetition(competition)
	if err != nil {
		return []football.Match{}, OriginNone, err
	}

	out, origin := runQuery(ctx, s, queryPlan[[]football.Match]{
		operation: operationLiveMatches,
		key:       liveMatchesKey(code, s.now()),
		ttl:       s.cfg.LiveTTL,
		skipFresh: skipFresh,
		call: func(ctx context.Context, provider football.Provider) ([]football.Match, error) {
			return provider.LiveMatches(ctx, code)
		},
		accept: func([]football.Match) bool { return true },
	})
	return nonNilMatches(out), origin, nil
}

// Fixtures returns the matches of a competition, optionally for one matchday.
// A provider with no fixtures hands over to the next provider.
func (s *FootballDataService) Fixtures(ctx context.Context, competition string, matchday *int) ([]football.Match, error) {
	out, _, err := s.fixtures(ctx, competition, matchday, false)
	return out, err
}

func (s *FootballDataService) RefreshFixtures(ctx context.Context, competition string, matchday *int) ([]football.Match, Origin, error) {
	return s.fixtures(ctx, competition, matchday, true)
}

func (s *FootballDataService) fixtures(ctx context.Context, competition string, matchday *int, skipFresh bool) ([]football.Match, Origin, error) {
	code, err := s.normalizeCompetition(competition)
	if err != nil {
		return []football.Match{}, OriginNone, err
	}
	if matchday != nil && (*matchday < minMatchday || *matchday > maxMatchday) {
		return []football.Match{}, OriginNone, fmt.Errorf("%w: matchday must be between %d and %d, got %d", ErrInvalidInput, minMatchday, maxMatchday, *matchday)
	}

	out, origin := runQuery(ctx, s, queryPlan[[]football.Match]{
		operation: operationFixtures,
		key:       fixturesKey(code, matchday),
		ttl:       s.cfg.StaticTTL,
		skipFresh: skipFresh,
		call: func(ctx context.Context, provider football.Provider) ([]football.Match, error) {
			return provider.Fixtures(ctx, code, matchday)
		},
		accept: func(items []football.Match) bool { return len(items) > 0 },
	})
	return nonNilMatches(out), origin, nil
}

// MatchByID returns one match, or nil when no source knows it.
func (s *FootballDataService) MatchByID(ctx context.Context, id int64) (*football.Match, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: match id must be > 0", ErrInvalidInput)
	}

	out, _ := runQuery(ctx, s, queryPlan[*football.Match]{
		operation: operationMatch,
		key:       matchKey(id),
		ttl:       s.cfg.StaticTTL,
		call: func(ctx context.Context, provider football.Provider) (*football.Match, error) {
			return provider.MatchByID(ctx, id)
		},
		accept: func(match *football.Match) bool { return match != nil },
	})
	return out, nil
}

// Standings returns the current league table, or nil when unavailable.
func (s *FootballDataService) Standings(ctx context.Context, competition string) (*football.Standings, error) {
	out, _, err := s.standings(ctx, competition, false)
	return out, err
}

func (s *FootballDataService) RefreshStandings(ctx context.Context, competition string) (*football.Standings, Origin, error) {
	return s.standings(ctx, competition, true)
}

func (s *FootballDataService) standings(ctx context.Context, competition string, skipFresh bool) (*football.Standings, Origin, error) {
	code, err := s.normalizeCompetition(competition)
	if err != nil {
		return nil, OriginNone, err
	}

	out, origin := runQuery(ctx, s, queryPlan[*football.Standings]{
		operation: operationStandings,
		key:       standingsKey(code),
		ttl:       s.cfg.StaticTTL,
		skipFresh: skipFresh,
		call: func(ctx context.Context, provider football.Provider) (*football.Standings, error) {
			return provider.Standings(ctx, code)
		},
		accept: func(standings *football.Standings) bool { return standings != nil },
	})
	return out, origin, nil
}

// Team returns one club, or nil when no source knows it.
func (s *FootballDataService) Team(ctx context.Context, id int64) (*football.Team, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}

	out, _ := runQuery(ctx, s, queryPlan[*football.Team]{
		operation: operationTeam,
		key:       teamKey(id),
		ttl:       s.cfg.StaticTTL,
		call: func(ctx context.Context, provider football.Provider) (*football.Team, error) {
			return provider.Team(ctx, id)
		},
		accept: func(team *football.Team) bool { return team != nil },
	})
	return out, nil
}

func (s *FootballDataService) normalizeCompetition(value string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(value))
	if code == "" {
		return s.cfg.DefaultCompetition, nil
	}
	if !competitionCodePattern.MatchString(code) {
		return "", fmt.Errorf("%w: competition code %q is malformed", ErrInvalidInput, value)
	}
	return code, nil
}

func liveMatchesKey(competition string, now time.Time) string {
	return "live_matches:" + competition + ":" + now.UTC().Format("2006-01-02")
}

func fixturesKey(competition string, matchday *int) string {
	scope := "all"
	if matchday != nil {
		scope = strconv.Itoa(*matchday)
	}
	return "fixtures:" + competition + ":" + scope
}

func matchKey(id int64) string {
	return "match:" + strconv.FormatInt(id, 10)
}

func standingsKey(competition string) string {
	return "standings:" + competition + ":current"
}

func teamKey(id int64) string {
	return "team:" + strconv.FormatInt(id, 10)
}

func nonNilMatches(items []football.Match) []football.Match {
	if items == nil {
		return []football.Match{}
	}
	return items
}
