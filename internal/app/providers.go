package app

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Amaradona-max/football-serie-a/external/apifootball"
	"github.com/Amaradona-max/football-serie-a/external/footballdata"
	"github.com/Amaradona-max/football-serie-a/internal/config"
	"github.com/Amaradona-max/football-serie-a/internal/domain/football"
	"github.com/Amaradona-max/football-serie-a/internal/infrastructure/archive"
	"github.com/Amaradona-max/football-serie-a/internal/platform/logging"
)

// buildProviders returns the providers in cfg.ProviderOrder. HTTP providers
// without credentials are skipped so a keyless deployment still serves the archive.
func buildProviders(cfg config.Config, archiveRepo archive.Repository, logger *logging.Logger) []football.Provider {
	providers := make([]football.Provider, 0, len(cfg.ProviderOrder))
	for _, name := range cfg.ProviderOrder {
		switch name {
		case config.ProviderAPIFootball:
			if cfg.APIFootballKey == "" {
				logger.Warn("api-football provider skipped, no api key configured")
				continue
			}
			leagues := make(map[string]int, len(cfg.APIFootballLeagueIDByCode))
			for code, id := range cfg.APIFootballLeagueIDByCode {
				leagues[code] = int(id)
			}
			providers = append(providers, apifootball.NewClient(apifootball.ClientConfig{
				BaseURL:            cfg.APIFootballBaseURL,
				APIKey:             cfg.APIFootballKey,
				Timeout:            cfg.ProviderTimeout,
				Season:             cfg.Season,
				DefaultCompetition: cfg.DefaultCompetition,
				Leagues:            leagues,
				RequestsPerMinute:  cfg.APIFootballRequestsPerMinute,
				Logger:             logger.With("provider", name),
			}))
		case config.ProviderFootballData:
			if cfg.FootballDataToken == "" {
				logger.Warn("football-data provider skipped, no token configured")
				continue
			}
			providers = append(providers, footballdata.NewClient(footballdata.ClientConfig{
				HTTPClient: &http.Client{
					Timeout:   cfg.ProviderTimeout,
					Transport: otelhttp.NewTransport(http.DefaultTransport),
				},
				BaseURL:            cfg.FootballDataBaseURL,
				Token:              cfg.FootballDataToken,
				Timeout:            cfg.ProviderTimeout,
				DefaultCompetition: cfg.DefaultCompetition,
				RequestsPerMinute:  cfg.FootballDataRequestsPerMin,
				Logger:             logger.With("provider", name),
			}))
		case config.ProviderArchive:
			if archiveRepo == nil {
				continue
			}
			providers = append(providers, archive.NewProvider(archiveRepo, cfg.DefaultCompetition))
		}
	}
	return providers
}
