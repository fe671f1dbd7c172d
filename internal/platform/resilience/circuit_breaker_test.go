package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAtThreshold(t *testing.T) {
	b := NewCircuitBreaker(3, 300*time.Second)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after two failures, got %s", state)
	}
	if got := b.Failures(); got != 2 {
		t.Fatalf("expected two failures, got %d", got)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
}

func TestCircuitBreaker_ResetsLazilyAfterTimeout(t *testing.T) {
	b := NewCircuitBreaker(3, 300*time.Second)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}

	now = now.Add(299 * time.Second)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open before reset timeout, got %s", state)
	}

	now = now.Add(time.Second)
	snap := b.Snapshot()
	if snap.State != CircuitStateClosed {
		t.Fatalf("expected closed once reset timeout elapsed, got %s", snap.State)
	}
	if snap.Failures != 0 {
		t.Fatalf("expected failure count reset, got %d", snap.Failures)
	}
	if !snap.OpenedAt.IsZero() {
		t.Fatalf("expected opened-at cleared, got %v", snap.OpenedAt)
	}
}

func TestCircuitBreaker_FailuresWhileOpenKeepOriginalDeadline(t *testing.T) {
	b := NewCircuitBreaker(1, 10*time.Second)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(8 * time.Second)
	b.RecordFailure()

	now = now.Add(2 * time.Second)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected reset measured from first opening, got %s", state)
	}
}

func TestCircuitBreaker_NotifiesTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, time.Minute)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	var transitions []string
	b.OnStateChange(func(from, to CircuitState, failures int) {
		transitions = append(transitions, string(from)+"->"+string(to))
	})

	b.RecordFailure()
	b.RecordFailure()
	now = now.Add(time.Minute)
	_ = b.State()
	_ = b.State()

	if len(transitions) != 2 {
		t.Fatalf("expected two transitions, got %v", transitions)
	}
	if transitions[0] != "closed->open" || transitions[1] != "open->closed" {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
}
