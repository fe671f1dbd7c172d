package httpapi

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

const defaultLimiterKeys = 1024

// KeyedLimiter hands out one token bucket per API key. The set of tracked
// keys is bounded; the least recently seen key is forgotten first.
type KeyedLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	buckets *lru.Cache[string, *rate.Limiter]
	now     func() time.Time
}

// NewKeyedLimiter allows requests per window for each key. requests <= 0
// returns nil, which allows everything.
func NewKeyedLimiter(requests int, window time.Duration) *KeyedLimiter {
	if requests <= 0 || window <= 0 {
		return nil
	}
	buckets, err := lru.New[string, *rate.Limiter](defaultLimiterKeys)
	if err != nil {
		return nil
	}
	return &KeyedLimiter{
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		buckets: buckets,
		now:     time.Now,
	}
}

// Allow reports whether key may proceed and, if not, how long to wait.
func (l *KeyedLimiter) Allow(key string) (bool, time.Duration) {
	if l == nil {
		return true, 0
	}

	l.mu.Lock()
	bucket, ok := l.buckets.Get(key)
	if !ok {
		bucket = rate.NewLimiter(l.limit, l.burst)
		l.buckets.Add(key, bucket)
	}
	l.mu.Unlock()

	now := l.now()
	reservation := bucket.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}
