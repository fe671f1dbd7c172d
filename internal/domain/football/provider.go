package football

import (
	"context"
	"fmt"
	"strings"
)

// ProviderName identifies an upstream source. It keys breaker and metrics state.
type ProviderName string

const (
	ProviderAPIFootball  ProviderName = "api_football"
	ProviderFootballData ProviderName = "football_data"
	ProviderArchive      ProviderName = "archive"

	// ProviderCache tags results served from cache in metrics; no Provider uses it.
	ProviderCache ProviderName = "cache"
)

func ParseProviderName(value string) (ProviderName, error) {
	name := ProviderName(strings.ToLower(strings.TrimSpace(value)))
	switch name {
	case ProviderAPIFootball, ProviderFootballData, ProviderArchive:
		return name, nil
	default:
		return "", fmt.Errorf("unknown provider %q", value)
	}
}

// Provider is one upstream source of football data.
//
// An empty competition selects the provider's default league. Transport and
// decoding failures are returned as errors; a nil item or empty list with a nil
// error means the provider answered but had nothing to offer.
type Provider interface {
	Name() ProviderName
	LiveMatches(ctx context.Context, competition string) ([]Match, error)
	MatchByID(ctx context.Context, id int64) (*Match, error)
	Standings(ctx context.Context, competition string) (*Standings, error)
	Fixtures(ctx context.Context, competition string, matchday *int) ([]Match, error)
	Team(ctx context.Context, id int64) (*Team, error)
}
