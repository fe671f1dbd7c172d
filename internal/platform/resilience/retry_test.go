package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func recordingSleep(waits *[]time.Duration) func(context.Context, time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return ctx.Err()
	}
}

func TestRetry_LinearBackoffThenFinalError(t *testing.T) {
	var waits []time.Duration
	policy := NewRetryPolicy(DefaultRetryConfig())
	policy.Sleep = recordingSleep(&waits)

	calls := 0
	wantErr := errors.New("upstream down")
	_, err := Retry(context.Background(), policy, func(context.Context) (int, error) {
		calls++
		return 0, wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Fatalf("expected final error to propagate, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	if len(waits) != 2 || waits[0] != time.Second || waits[1] != 2*time.Second {
		t.Fatalf("unexpected backoff waits: %v", waits)
	}
}

func TestRetry_StopsOnSuccess(t *testing.T) {
	var waits []time.Duration
	policy := RetryPolicy{MaxRetries: 2, Backoff: LinearBackoff(time.Second), Sleep: recordingSleep(&waits)}

	calls := 0
	got, err := Retry(context.Background(), policy, func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("blip")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 2 {
		t.Fatalf("expected success on second attempt, got %q after %d calls", got, calls)
	}
	if len(waits) != 1 {
		t.Fatalf("expected one wait, got %v", waits)
	}
}

func TestRetry_CancelledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxRetries: 5, Backoff: LinearBackoff(time.Hour)}

	calls := 0
	wantErr := errors.New("timeout")
	_, err := Retry(ctx, policy, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected last attempt error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestRetry_ZeroRetriesSingleAttempt(t *testing.T) {
	calls := 0
	_, _ = Retry(context.Background(), RetryPolicy{}, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("fail")
	})
	if calls != 1 {
		t.Fatalf("expected single attempt, got %d", calls)
	}
}
