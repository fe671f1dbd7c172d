package usecase

import crerr "github.com/cockroachdb/errors"

// Query operations only ever return ErrInvalidInput; data unavailability is
// reported through empty results. The remaining sentinels are for the API
// surface (auth, rate limits, job endpoints).
var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrUnauthorized          = crerr.New("unauthorized")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
	ErrRateLimited           = crerr.New("rate limited")
)
