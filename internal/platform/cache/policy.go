package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// Result classifies one cache read.
type Result string

const (
	ResultHit     Result = "hit"
	ResultMiss    Result = "miss"
	ResultExpired Result = "expired"
	ResultFailed  Result = "failed"
)

// Lookup is the outcome of a cache read. Failed lookups carry the store or
// decode error; callers treat them like a miss.
type Lookup struct {
	Result   Result
	StoredAt time.Time
	Err      error
}

func (l Lookup) Hit() bool {
	return l.Result == ResultHit
}

type envelope struct {
	StoredAt   time.Time       `json:"stored_at"`
	FreshUntil time.Time       `json:"fresh_until"`
	Payload    json.RawMessage `json:"payload"`
}

// Cache layers freshness on top of a Store. Values are kept physically for
// their logical TTL plus StaleRetention, so an expired value stays readable
// through Stale until the store evicts it.
type Cache struct {
	store          Store
	staleRetention time.Duration
	now            func() time.Time
}

func New(store Store, staleRetention time.Duration) *Cache {
	if staleRetention < 0 {
		staleRetention = 0
	}
	return &Cache{
		store:          store,
		staleRetention: staleRetention,
		now:            time.Now,
	}
}

// SetClock replaces the time source used for freshness decisions.
func (c *Cache) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	c.now = now
}

func (c *Cache) Store() Store {
	return c.store
}

// Fresh decodes the value under key into dst only while it is within its TTL.
func (c *Cache) Fresh(ctx context.Context, key string, dst any) Lookup {
	return c.read(ctx, key, dst, true)
}

// Stale decodes the value under key into dst regardless of its TTL.
func (c *Cache) Stale(ctx context.Context, key string, dst any) Lookup {
	return c.read(ctx, key, dst, false)
}

// Put stores value under key as fresh for ttl.
func (c *Cache) Put(ctx context.Context, key string, ttl time.Duration, value any) error {
	if c == nil || c.store == nil {
		return ErrStoreUnavailable
	}
	if ttl <= 0 {
		return fmt.Errorf("cache ttl must be > 0")
	}

	payload, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache payload %s: %w", key, err)
	}
	now := c.now().UTC()
	raw, err := sonic.Marshal(envelope{
		StoredAt:   now,
		FreshUntil: now.Add(ttl),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("encode cache envelope %s: %w", key, err)
	}

	return c.store.SetEx(ctx, key, ttl+c.staleRetention, raw)
}

func (c *Cache) read(ctx context.Context, key string, dst any, requireFresh bool) Lookup {
	if c == nil || c.store == nil {
		return Lookup{Result: ResultFailed, Err: ErrStoreUnavailable}
	}

	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return Lookup{Result: ResultFailed, Err: err}
	}
	if !ok {
		return Lookup{Result: ResultMiss}
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return Lookup{Result: ResultFailed, Err: fmt.Errorf("decode cache envelope %s: %w", key, err)}
	}
	if requireFresh && !c.now().Before(env.FreshUntil) {
		return Lookup{Result: ResultExpired, StoredAt: env.StoredAt}
	}
	if err := sonic.Unmarshal(env.Payload, dst); err != nil {
		return Lookup{Result: ResultFailed, StoredAt: env.StoredAt, Err: fmt.Errorf("decode cache payload %s: %w", key, err)}
	}

	return Lookup{Result: ResultHit, StoredAt: env.StoredAt}
}
