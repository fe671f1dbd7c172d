package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
	"github.com/Amaradona-max/football-serie-a/internal/infrastructure/archive"
	"github.com/Amaradona-max/football-serie-a/internal/platform/logging"
)

type SyncJob string

const (
	SyncJobLive      SyncJob = "sync_live"
	SyncJobStandings SyncJob = "sync_standings"
	SyncJobFixtures  SyncJob = "sync_fixtures"
	SyncJobEmergency SyncJob = "emergency_sync"

	syncStatusSuccess = "success"
	syncStatusStale   = "stale"
	syncStatusFailed  = "failed"
)

type SyncTaskResult struct {
	Job         SyncJob `json:"job"`
	Competition string  `json:"competition"`
	Status      string  `json:"status"`
	Origin      Origin  `json:"origin"`
	Provider    string  `json:"provider,omitempty"`
	Records     int     `json:"records"`
	Persisted   bool    `json:"persisted"`
	DurationMs  int64   `json:"duration_ms"`
	Message     string  `json:"message,omitempty"`
}

type SyncResult struct {
	Job          SyncJob          `json:"job"`
	TaskCount    int              `json:"task_count"`
	SuccessCount int              `json:"success_count"`
	StaleCount   int              `json:"stale_count"`
	FailedCount  int              `json:"failed_count"`
	WorkerCount  int              `json:"worker_count"`
	Tasks        []SyncTaskResult `json:"tasks"`
}

type SyncSchedules struct {
	Live         string
	LiveMatchday string
	Standings    string
	Fixtures     string
}

func DefaultSyncSchedules() SyncSchedules {
	return SyncSchedules{
		Live:         "0 */30 * * * *",
		LiveMatchday: "0 */2 12-22 * * SAT,SUN",
		Standings:    "0 0 3 * * *",
		Fixtures:     "0 0 4 * * MON",
	}
}

type SyncServiceConfig struct {
	Competitions []string
	MaxWorkers   int
	JobTimeout   time.Duration
	Schedules    SyncSchedules
}

type footballRefresher interface {
	DefaultCompetition() string
	RefreshLiveMatches(ctx context.Context, competition string) ([]football.Match, Origin, error)
	RefreshStandings(ctx context.Context, competition string) (*football.Standings, Origin, error)
	RefreshFixtures(ctx context.Context, competition string, matchday *int) ([]football.Match, Origin, error)
}

type workerPool interface {
	Submit(task func()) error
	Release()
}

func newAntsPool(size int) (workerPool, error) {
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

type SyncRecorder interface {
	SyncRun(job string, err error)
}

// SyncService re-warms the cache in the background and copies fresh provider
// data into the archive so it can be served when every provider is down.
type SyncService struct {
	data     footballRefresher
	writer   archive.Writer
	recorder SyncRecorder
	logger   *logging.Logger
	cfg      SyncServiceConfig
	newPool  func(size int) (workerPool, error)
}

func NewSyncService(cfg SyncServiceConfig, data footballRefresher, writer archive.Writer, recorder SyncRecorder, logger *logging.Logger) *SyncService {
	competitions := make([]string, 0, len(cfg.Competitions))
	seen := make(map[string]struct{}, len(cfg.Competitions))
	for _, item := range cfg.Competitions {
		code := strings.ToUpper(strings.TrimSpace(item))
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		competitions = append(competitions, code)
	}
	if len(competitions) == 0 {
		competitions = append(competitions, data.DefaultCompetition())
	}
	cfg.Competitions = competitions
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SyncService{
		data:     data,
		writer:   writer,
		recorder: recorder,
		logger:   logger,
		cfg:      cfg,
		newPool:  newAntsPool,
	}
}

func (s *SyncService) Competitions() []string {
	return append([]string(nil), s.cfg.Competitions...)
}

func (s *SyncService) SyncLive(ctx context.Context) (SyncResult, error) {
	return s.run(ctx, SyncJobLive, s.syncLiveCompetition)
}

func (s *SyncService) SyncStandings(ctx context.Context) (SyncResult, error) {
	return s.run(ctx, SyncJobStandings, s.syncStandingsCompetition)
}

func (s *SyncService) SyncFixtures(ctx context.Context) (SyncResult, error) {
	return s.run(ctx, SyncJobFixtures, s.syncFixturesCompetition)
}

// EmergencySync refreshes live matches and standings at the same time.
func (s *SyncService) EmergencySync(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.EmergencySync")
	defer span.End()

	var (
		wg                      conc.WaitGroup
		liveResult, tableResult SyncResult
		liveErr, tableErr       error
	)
	wg.Go(func() { liveResult, liveErr = s.SyncLive(ctx) })
	wg.Go(func() { tableResult, tableErr = s.SyncStandings(ctx) })
	if recovered := wg.WaitAndRecover(); recovered != nil {
		err := fmt.Errorf("emergency sync panicked: %v", recovered.Value)
		s.recordRun(SyncJobEmergency, err)
		return SyncResult{Job: SyncJobEmergency, Tasks: []SyncTaskResult{}}, err
	}

	result := SyncResult{
		Job:         SyncJobEmergency,
		TaskCount:   liveResult.TaskCount + tableResult.TaskCount,
		WorkerCount: max(liveResult.WorkerCount, tableResult.WorkerCount),
		Tasks:       append(append([]SyncTaskResult{}, liveResult.Tasks...), tableResult.Tasks...),
	}
	result.SuccessCount = liveResult.SuccessCount + tableResult.SuccessCount
	result.StaleCount = liveResult.StaleCount + tableResult.StaleCount
	result.FailedCount = liveResult.FailedCount + tableResult.FailedCount

	err := liveErr
	if err == nil {
		err = tableErr
	}
	s.recordRun(SyncJobEmergency, runError(result, err))
	return result, err
}

type syncTaskFunc func(ctx context.Context, competition string) SyncTaskResult

func (s *SyncService) run(ctx context.Context, job SyncJob, task syncTaskFunc) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService."+string(job))
	defer span.End()

	competitions := s.cfg.Competitions
	workerCount := min(s.cfg.MaxWorkers, len(competitions))
	result := SyncResult{
		Job:         job,
		TaskCount:   len(competitions),
		WorkerCount: workerCount,
		Tasks:       make([]SyncTaskResult, 0, len(competitions)),
	}

	pool, err := s.newPool(workerCount)
	if err != nil {
		s.recordRun(job, err)
		return result, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan SyncTaskResult, len(competitions))
	var successCount, staleCount, failedCount atomic.Int32

	var workers sync.WaitGroup
	var submitErr error
	for _, competition := range competitions {
		competition := competition
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := task(ctx, competition)
			row.Job = job
			row.Competition = competition
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case syncStatusSuccess:
				successCount.Add(1)
			case syncStatusStale:
				staleCount.Add(1)
			default:
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			submitErr = fmt.Errorf("submit sync task for %s: %w", competition, err)
			break
		}
	}

	// Tasks already accepted by the pool finish before the job reports.
	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].Competition < result.Tasks[j].Competition
	})

	result.SuccessCount = int(successCount.Load())
	result.StaleCount = int(staleCount.Load())
	result.FailedCount = int(failedCount.Load())

	if submitErr != nil {
		s.logger.ErrorContext(ctx, "sync job aborted", "job", job, "completed", len(result.Tasks), "error", submitErr)
		s.recordRun(job, submitErr)
		return result, submitErr
	}

	s.logger.InfoContext(ctx, "sync job finished",
		"job", job,
		"tasks", result.TaskCount,
		"success", result.SuccessCount,
		"stale", result.StaleCount,
		"failed", result.FailedCount,
	)
	s.recordRun(job, runError(result, nil))
	return result, nil
}

func (s *SyncService) syncLiveCompetition(ctx context.Context, competition string) SyncTaskResult {
	matches, origin, err := s.data.RefreshLiveMatches(ctx, competition)
	if err != nil {
		return failedTask(origin, err)
	}
	row := taskFromOrigin(origin, len(matches))
	if origin == OriginProvider && len(matches) > 0 {
		row.Provider = string(matches[0].Provider)
		row.Persisted, row.Message = s.persistMatches(ctx, competition, matches)
	}
	return row
}

func (s *SyncService) syncStandingsCompetition(ctx context.Context, competition string) SyncTaskResult {
	standings, origin, err := s.data.RefreshStandings(ctx, competition)
	if err != nil {
		return failedTask(origin, err)
	}
	if standings == nil {
		return taskFromOrigin(origin, 0)
	}

	row := taskFromOrigin(origin, len(standings.Rows))
	row.Provider = string(standings.Provider)
	if origin == OriginProvider && standings.Provider != football.ProviderArchive && s.writer != nil {
		if err := s.writer.SaveStandings(ctx, competition, *standings); err != nil {
			s.logger.WarnContext(ctx, "archive standings write failed", "competition", competition, "error", err)
			row.Message = "archive write failed: " + err.Error()
		} else {
			row.Persisted = true
		}
	}
	return row
}

// syncFixturesCompetition refreshes the full season and then the matchday
// currently in play or next up, which the API serves most often.
func (s *SyncService) syncFixturesCompetition(ctx context.Context, competition string) SyncTaskResult {
	matches, origin, err := s.data.RefreshFixtures(ctx, competition, nil)
	if err != nil {
		return failedTask(origin, err)
	}
	row := taskFromOrigin(origin, len(matches))
	if len(matches) == 0 {
		return row
	}
	row.Provider = string(matches[0].Provider)
	if origin == OriginProvider {
		row.Persisted, row.Message = s.persistMatches(ctx, competition, matches)
	}

	if matchday := currentMatchday(matches); matchday > 0 {
		if _, _, err := s.data.RefreshFixtures(ctx, competition, &matchday); err != nil {
			s.logger.WarnContext(ctx, "refresh current matchday failed", "competition", competition, "matchday", matchday, "error", err)
		}
	}
	return row
}

func (s *SyncService) persistMatches(ctx context.Context, competition string, matches []football.Match) (bool, string) {
	if s.writer == nil {
		return false, ""
	}
	fresh := make([]football.Match, 0, len(matches))
	for _, match := range matches {
		if match.Provider == football.ProviderArchive {
			continue
		}
		fresh = append(fresh, match)
	}
	if len(fresh) == 0 {
		return false, ""
	}
	if err := s.writer.SaveMatches(ctx, competition, fresh); err != nil {
		s.logger.WarnContext(ctx, "archive matches write failed", "competition", competition, "error", err)
		return false, "archive write failed: " + err.Error()
	}
	return true, ""
}

func (s *SyncService) recordRun(job SyncJob, err error) {
	if s.recorder != nil {
		s.recorder.SyncRun(string(job), err)
	}
}

// StartScheduler registers the sync jobs on a seconds-precision cron and
// starts it. Empty schedules are skipped. Stop the returned cron on shutdown.
func (s *SyncService) StartScheduler(ctx context.Context) (*cron.Cron, error) {
	cronLogger := cronLogAdapter{logger: s.logger.With("component", "sync-scheduler")}
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(time.UTC),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	entries := []struct {
		name     string
		schedule string
		job      func(context.Context) (SyncResult, error)
	}{
		{name: "live", schedule: s.cfg.Schedules.Live, job: s.SyncLive},
		{name: "live_matchday", schedule: s.cfg.Schedules.LiveMatchday, job: s.SyncLive},
		{name: "standings", schedule: s.cfg.Schedules.Standings, job: s.SyncStandings},
		{name: "fixtures", schedule: s.cfg.Schedules.Fixtures, job: s.SyncFixtures},
	}

	registered := 0
	for _, entry := range entries {
		schedule := strings.TrimSpace(entry.schedule)
		if schedule == "" {
			continue
		}
		entry := entry
		if _, err := c.AddFunc(schedule, func() {
			jobCtx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
			defer cancel()
			jobCtx, span := startJobSpan(jobCtx, "usecase.SyncService.scheduled", attribute.String("football.schedule", entry.name))
			defer span.End()
			if _, err := entry.job(jobCtx); err != nil {
				s.logger.Error("scheduled sync failed", "schedule", entry.name, "error", err)
			}
		}); err != nil {
			return nil, fmt.Errorf("register %s sync schedule %q: %w", entry.name, schedule, err)
		}
		registered++
	}

	c.Start()
	s.logger.Info("sync scheduler started", "jobs", registered, "competitions", strings.Join(s.cfg.Competitions, ","))
	return c, nil
}

type cronLogAdapter struct {
	logger *logging.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug("cron: "+msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

func taskFromOrigin(origin Origin, records int) SyncTaskResult {
	row := SyncTaskResult{Origin: origin, Records: records}
	switch origin {
	case OriginProvider:
		row.Status = syncStatusSuccess
	case OriginStaleCache:
		row.Status = syncStatusStale
		row.Message = "all providers failed, stale cache kept"
	default:
		row.Status = syncStatusFailed
		row.Message = "no provider returned data"
	}
	return row
}

func failedTask(origin Origin, err error) SyncTaskResult {
	return SyncTaskResult{Status: syncStatusFailed, Origin: origin, Message: err.Error()}
}

func runError(result SyncResult, err error) error {
	if err != nil {
		return err
	}
	if result.FailedCount > 0 {
		return fmt.Errorf("%d of %d sync tasks failed", result.FailedCount, result.TaskCount)
	}
	return nil
}

// currentMatchday picks the lowest matchday with a live match, else the
// lowest one still to be played, else the last known one.
func currentMatchday(matches []football.Match) int {
	liveMin, upcomingMin, lastKnown := 0, 0, 0

	for _, item := range matches {
		if item.Matchday <= 0 {
			continue
		}
		if item.Matchday > lastKnown {
			lastKnown = item.Matchday
		}

		switch {
		case item.Status.IsLive():
			if liveMin == 0 || item.Matchday < liveMin {
				liveMin = item.Matchday
			}
		case item.Status == football.StatusFinished, item.Status == football.StatusCancelled, item.Status == football.StatusPostponed:
			continue
		default:
			if upcomingMin == 0 || item.Matchday < upcomingMin {
				upcomingMin = item.Matchday
			}
		}
	}

	switch {
	case liveMin > 0:
		return liveMin
	case upcomingMin > 0:
		return upcomingMin
	default:
		return lastKnown
	}
}
