package resilience

import (
	"context"
	"time"
)

// RetryPolicy bounds how often a single call is re-attempted.
type RetryPolicy struct {
	// MaxRetries is the number of extra attempts after the first one.
	MaxRetries int
	// Backoff returns the pause before the retry following attempt (0-based).
	Backoff func(attempt int) time.Duration
	// Sleep waits for d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

func NewRetryPolicy(cfg RetryConfig) RetryPolicy {
	cfg = NormalizeRetryConfig(cfg)
	return RetryPolicy{
		MaxRetries: cfg.MaxRetries,
		Backoff:    LinearBackoff(cfg.Backoff),
	}
}

// LinearBackoff waits step*(attempt+1): 1s, 2s, 3s for a one second step.
func LinearBackoff(step time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(attempt+1) * step
	}
}

// Retry calls fn until it succeeds or MaxRetries extra attempts are spent.
// The error of the final attempt is returned unchanged. A done context stops
// the loop early and still returns the last attempt's error.
func Retry[T any](ctx context.Context, policy RetryPolicy, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	sleep := policy.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	for attempt := 0; ; attempt++ {
		value, err := fn(ctx)
		if err == nil {
			return value, nil
		}
		if attempt >= policy.MaxRetries {
			return zero, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, err
		}

		var wait time.Duration
		if policy.Backoff != nil {
			wait = policy.Backoff(attempt)
		}
		if sleepErr := sleep(ctx, wait); sleepErr != nil {
			return zero, err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
