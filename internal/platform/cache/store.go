package cache

import (
	"context"
	"errors"
	"time"
)

var ErrStoreUnavailable = errors.New("cache store unavailable")

// Store is a byte-oriented key/value store with per-key expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	SetEx(ctx context.Context, key string, ttl time.Duration, value []byte) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
