package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Amaradona-max/football-serie-a/internal/platform/logging"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	ArchiveBackendYAML     = "yaml"
	ArchiveBackendPostgres = "postgres"

	ProviderAPIFootball  = "api_football"
	ProviderFootballData = "football_data"
	ProviderArchive      = "archive"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	LogLevel           logging.Level
	LogFormat          logging.Format
	CORSAllowedOrigins []string

	CacheBackend          string
	RedisURL              string
	CacheTTLLive          time.Duration
	CacheTTLStatic        time.Duration
	CacheStaleRetention   time.Duration
	CacheMemoryMaxEntries int

	ProviderOrder        []string
	ProviderTimeout      time.Duration
	ProviderMaxRetries   int
	ProviderRetryBackoff time.Duration
	CircuitEnabled       bool
	CircuitMaxFailures   int
	CircuitResetTimeout  time.Duration

	APIFootballBaseURL           string
	APIFootballKey               string
	APIFootballLeagueIDByCode    map[string]int64
	APIFootballRequestsPerMinute int
	FootballDataBaseURL          string
	FootballDataToken            string
	FootballDataRequestsPerMin   int

	ArchiveBackend     string
	ArchiveDatasetPath string
	ArchiveWatch       bool
	DBURL              string
	DBConnectTimeout   time.Duration

	DefaultCompetition string
	Season             int

	APIKey            string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	InternalJobToken  string

	SyncEnabled          bool
	SyncCompetitions     []string
	SyncMaxWorkers       int
	SyncJobTimeout       time.Duration
	SyncLiveCron         string
	SyncLiveMatchdayCron string
	SyncStandingsCron    string
	SyncFixturesCron     string

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	PprofEnabled               bool
	PprofAddr                  string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "45s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(getEnv("APP_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_SHUTDOWN_TIMEOUT: %w", err)
	}
	if shutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_SHUTDOWN_TIMEOUT must be > 0")
	}

	logFormat := logging.Format(strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_FORMAT", string(logging.FormatJSON)))))
	if logFormat != logging.FormatJSON && logFormat != logging.FormatConsole {
		return Config{}, fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", logFormat, logging.FormatJSON, logging.FormatConsole)
	}

	cacheBackend := strings.ToLower(strings.TrimSpace(getEnv("CACHE_BACKEND", CacheBackendMemory)))
	if cacheBackend != CacheBackendMemory && cacheBackend != CacheBackendRedis {
		return Config{}, fmt.Errorf("invalid CACHE_BACKEND %q: valid values are %s, %s", cacheBackend, CacheBackendMemory, CacheBackendRedis)
	}
	redisURL := strings.TrimSpace(getEnv("REDIS_URL", "redis://localhost:6379/0"))
	if cacheBackend == CacheBackendRedis && redisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=redis")
	}
	cacheTTLLive, err := time.ParseDuration(getEnv("CACHE_TTL_LIVE", "300s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL_LIVE: %w", err)
	}
	if cacheTTLLive <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL_LIVE must be > 0")
	}
	cacheTTLStatic, err := time.ParseDuration(getEnv("CACHE_TTL_STATIC", "86400s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL_STATIC: %w", err)
	}
	if cacheTTLStatic <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL_STATIC must be > 0")
	}
	cacheStaleRetention, err := time.ParseDuration(getEnv("CACHE_STALE_RETENTION", "168h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_STALE_RETENTION: %w", err)
	}
	if cacheStaleRetention < 0 {
		return Config{}, fmt.Errorf("CACHE_STALE_RETENTION must be >= 0")
	}
	cacheMemoryMaxEntries, err := getEnvAsInt("CACHE_MEMORY_MAX_ENTRIES", 10000)
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_MEMORY_MAX_ENTRIES: %w", err)
	}
	if cacheMemoryMaxEntries <= 0 {
		return Config{}, fmt.Errorf("CACHE_MEMORY_MAX_ENTRIES must be > 0")
	}

	providerOrder, err := parseProviderOrder(getEnv("PROVIDER_ORDER", strings.Join([]string{ProviderAPIFootball, ProviderFootballData, ProviderArchive}, ",")))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_ORDER: %w", err)
	}
	providerTimeout, err := time.ParseDuration(getEnv("PROVIDER_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_TIMEOUT: %w", err)
	}
	if providerTimeout <= 0 {
		return Config{}, fmt.Errorf("PROVIDER_TIMEOUT must be > 0")
	}
	providerMaxRetries, err := getEnvAsInt("PROVIDER_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_MAX_RETRIES: %w", err)
	}
	if providerMaxRetries < 0 {
		return Config{}, fmt.Errorf("PROVIDER_MAX_RETRIES must be >= 0")
	}
	providerRetryBackoff, err := time.ParseDuration(getEnv("PROVIDER_RETRY_BACKOFF", "1s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROVIDER_RETRY_BACKOFF: %w", err)
	}
	if providerRetryBackoff < 0 {
		return Config{}, fmt.Errorf("PROVIDER_RETRY_BACKOFF must be >= 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CIRCUIT_ENABLED: %w", err)
	}
	circuitMaxFailures, err := getEnvAsInt("CIRCUIT_MAX_FAILURES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse CIRCUIT_MAX_FAILURES: %w", err)
	}
	if circuitMaxFailures < 1 {
		return Config{}, fmt.Errorf("CIRCUIT_MAX_FAILURES must be >= 1")
	}
	circuitResetTimeout, err := time.ParseDuration(getEnv("CIRCUIT_RESET_TIMEOUT", "300s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CIRCUIT_RESET_TIMEOUT: %w", err)
	}
	if circuitResetTimeout <= 0 {
		return Config{}, fmt.Errorf("CIRCUIT_RESET_TIMEOUT must be > 0")
	}

	apiFootballLeagues, err := parseIDMap(getEnv("API_FOOTBALL_LEAGUES", "SA:135"))
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_LEAGUES: %w", err)
	}
	apiFootballRPM, err := getEnvAsInt("API_FOOTBALL_RPM", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_RPM: %w", err)
	}
	if apiFootballRPM < 0 {
		return Config{}, fmt.Errorf("API_FOOTBALL_RPM must be >= 0")
	}
	footballDataRPM, err := getEnvAsInt("FOOTBALL_DATA_RPM", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_RPM: %w", err)
	}
	if footballDataRPM < 0 {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_RPM must be >= 0")
	}

	archiveBackend := strings.ToLower(strings.TrimSpace(getEnv("ARCHIVE_BACKEND", ArchiveBackendYAML)))
	if archiveBackend != ArchiveBackendYAML && archiveBackend != ArchiveBackendPostgres {
		return Config{}, fmt.Errorf("invalid ARCHIVE_BACKEND %q: valid values are %s, %s", archiveBackend, ArchiveBackendYAML, ArchiveBackendPostgres)
	}
	archiveWatch, err := strconv.ParseBool(getEnv("ARCHIVE_WATCH", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ARCHIVE_WATCH: %w", err)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if archiveBackend == ArchiveBackendPostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when ARCHIVE_BACKEND=postgres")
	}
	dbConnectTimeout, err := time.ParseDuration(getEnv("DB_CONNECT_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_CONNECT_TIMEOUT: %w", err)
	}
	if dbConnectTimeout < time.Second {
		return Config{}, fmt.Errorf("DB_CONNECT_TIMEOUT must be >= 1s")
	}

	season, err := getEnvAsInt("SEASON", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse SEASON: %w", err)
	}
	if season < 0 {
		return Config{}, fmt.Errorf("SEASON must be >= 0")
	}

	apiKey := strings.TrimSpace(getEnv("API_KEY", ""))
	if appEnv == EnvProd && apiKey == "" {
		return Config{}, fmt.Errorf("API_KEY is required when APP_ENV=%s", EnvProd)
	}
	rateLimitRequests, err := getEnvAsInt("RATE_LIMIT_REQUESTS", 100)
	if err != nil {
		return Config{}, fmt.Errorf("parse RATE_LIMIT_REQUESTS: %w", err)
	}
	if rateLimitRequests < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_REQUESTS must be >= 0")
	}
	rateLimitWindow, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RATE_LIMIT_WINDOW: %w", err)
	}
	if rateLimitWindow <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_WINDOW must be > 0")
	}

	syncEnabled, err := strconv.ParseBool(getEnv("SYNC_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_ENABLED: %w", err)
	}
	syncMaxWorkers, err := getEnvAsInt("SYNC_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_MAX_WORKERS: %w", err)
	}
	if syncMaxWorkers < 1 {
		return Config{}, fmt.Errorf("SYNC_MAX_WORKERS must be >= 1")
	}
	syncJobTimeout, err := time.ParseDuration(getEnv("SYNC_JOB_TIMEOUT", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_JOB_TIMEOUT: %w", err)
	}
	if syncJobTimeout <= 0 {
		return Config{}, fmt.Errorf("SYNC_JOB_TIMEOUT must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "football-serie-a-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		ShutdownTimeout:    shutdownTimeout,
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:          logFormat,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		CacheBackend:          cacheBackend,
		RedisURL:              redisURL,
		CacheTTLLive:          cacheTTLLive,
		CacheTTLStatic:        cacheTTLStatic,
		CacheStaleRetention:   cacheStaleRetention,
		CacheMemoryMaxEntries: cacheMemoryMaxEntries,

		ProviderOrder:        providerOrder,
		ProviderTimeout:      providerTimeout,
		ProviderMaxRetries:   providerMaxRetries,
		ProviderRetryBackoff: providerRetryBackoff,
		CircuitEnabled:       circuitEnabled,
		CircuitMaxFailures:   circuitMaxFailures,
		CircuitResetTimeout:  circuitResetTimeout,

		APIFootballBaseURL:           strings.TrimSpace(getEnv("API_FOOTBALL_BASE_URL", "https://api-football-v1.p.rapidapi.com/v3")),
		APIFootballKey:               strings.TrimSpace(getEnv("API_FOOTBALL_API_KEY", "")),
		APIFootballLeagueIDByCode:    apiFootballLeagues,
		APIFootballRequestsPerMinute: apiFootballRPM,
		FootballDataBaseURL:          strings.TrimSpace(getEnv("FOOTBALL_DATA_BASE_URL", "https://api.football-data.org/v4")),
		FootballDataToken:            strings.TrimSpace(getEnv("FOOTBALL_DATA_TOKEN", "")),
		FootballDataRequestsPerMin:   footballDataRPM,

		ArchiveBackend:     archiveBackend,
		ArchiveDatasetPath: strings.TrimSpace(getEnv("ARCHIVE_DATASET_PATH", "")),
		ArchiveWatch:       archiveWatch,
		DBURL:              dbURL,
		DBConnectTimeout:   dbConnectTimeout,

		DefaultCompetition: strings.ToUpper(strings.TrimSpace(getEnv("DEFAULT_COMPETITION", "SA"))),
		Season:             season,

		APIKey:            apiKey,
		RateLimitRequests: rateLimitRequests,
		RateLimitWindow:   rateLimitWindow,
		InternalJobToken:  strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),

		SyncEnabled:          syncEnabled,
		SyncMaxWorkers:       syncMaxWorkers,
		SyncJobTimeout:       syncJobTimeout,
		SyncLiveCron:         strings.TrimSpace(getEnv("SYNC_LIVE_CRON", "0 */30 * * * *")),
		SyncLiveMatchdayCron: strings.TrimSpace(getEnv("SYNC_LIVE_MATCHDAY_CRON", "0 */2 12-22 * * SAT,SUN")),
		SyncStandingsCron:    strings.TrimSpace(getEnv("SYNC_STANDINGS_CRON", "0 0 3 * * *")),
		SyncFixturesCron:     strings.TrimSpace(getEnv("SYNC_FIXTURES_CRON", "0 0 4 * * MON")),

		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
	}
	if cfg.DefaultCompetition == "" {
		cfg.DefaultCompetition = "SA"
	}
	cfg.SyncCompetitions = splitCSV(strings.ToUpper(getEnv("SYNC_COMPETITIONS", cfg.DefaultCompetition)))
	if cfg.PprofAddr == "" {
		cfg.PprofAddr = ":6060"
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseProviderOrder(raw string) ([]string, error) {
	items := splitCSV(strings.ToLower(raw))
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one provider is required")
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		switch item {
		case ProviderAPIFootball, ProviderFootballData, ProviderArchive:
		default:
			return nil, fmt.Errorf("unknown provider %q: valid values are %s, %s, %s", item, ProviderAPIFootball, ProviderFootballData, ProviderArchive)
		}
		if _, dup := seen[item]; dup {
			return nil, fmt.Errorf("provider %q listed twice", item)
		}
		seen[item] = struct{}{}
	}
	return items, nil
}

// parseIDMap reads "CODE:number" pairs such as "SA:135,NOR:103".
func parseIDMap(raw string) (map[string]int64, error) {
	out := make(map[string]int64)
	parts := strings.Split(raw, ",")
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid map item %q, expected code:number", item)
		}

		key := strings.ToUpper(strings.TrimSpace(segments[0]))
		if key == "" {
			return nil, fmt.Errorf("empty competition code in item %q", item)
		}
		value, err := strconv.ParseInt(strings.TrimSpace(segments[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number in item %q: %w", item, err)
		}
		if value <= 0 {
			return nil, fmt.Errorf("id must be > 0 in item %q", item)
		}

		out[key] = value
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
