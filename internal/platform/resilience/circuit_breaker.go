package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed CircuitState = "closed"
	CircuitStateOpen   CircuitState = "open"
)

// StateChangeFunc observes breaker transitions. It runs outside the breaker lock.
type StateChangeFunc func(from, to CircuitState, failures int)

// CircuitBreaker counts failed provider interactions and opens once the
// threshold is reached. An open breaker closes again after resetTimeout; the
// check happens lazily on every read, so no timers are involved.
//
// Successes never decrement the failure count; only the timed reset zeroes it.
type CircuitBreaker struct {
	mu sync.Mutex

	maxFailures  int
	resetTimeout time.Duration

	state    CircuitState
	failures int
	openedAt time.Time

	now      func() time.Time
	onChange StateChangeFunc
}

type BreakerSnapshot struct {
	State    CircuitState
	Failures int
	OpenedAt time.Time
}

func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	if resetTimeout <= 0 {
		resetTimeout = DefaultCircuitBreakerConfig().ResetTimeout
	}

	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitStateClosed,
		now:          time.Now,
	}
}

// OnStateChange registers the transition observer. Call before the breaker is shared.
func (b *CircuitBreaker) OnStateChange(fn StateChangeFunc) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

func (b *CircuitBreaker) Allow() error {
	if b.State() == CircuitStateOpen {
		return ErrCircuitOpen
	}
	return nil
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	reset := b.expireLocked()
	b.failures++
	opened := false
	if b.state == CircuitStateClosed && b.failures >= b.maxFailures {
		b.state = CircuitStateOpen
		b.openedAt = b.now()
		opened = true
	}
	failures := b.failures
	onChange := b.onChange
	b.mu.Unlock()

	if onChange == nil {
		return
	}
	if reset {
		onChange(CircuitStateOpen, CircuitStateClosed, 0)
	}
	if opened {
		onChange(CircuitStateClosed, CircuitStateOpen, failures)
	}
}

func (b *CircuitBreaker) State() CircuitState {
	return b.Snapshot().State
}

func (b *CircuitBreaker) Failures() int {
	return b.Snapshot().Failures
}

func (b *CircuitBreaker) Snapshot() BreakerSnapshot {
	b.mu.Lock()
	reset := b.expireLocked()
	snapshot := BreakerSnapshot{
		State:    b.state,
		Failures: b.failures,
		OpenedAt: b.openedAt,
	}
	onChange := b.onChange
	b.mu.Unlock()

	if reset && onChange != nil {
		onChange(CircuitStateOpen, CircuitStateClosed, 0)
	}
	return snapshot
}

// expireLocked closes an open breaker whose reset timeout has elapsed.
func (b *CircuitBreaker) expireLocked() bool {
	if b.state != CircuitStateOpen {
		return false
	}
	if b.now().Sub(b.openedAt) < b.resetTimeout {
		return false
	}
	b.state = CircuitStateClosed
	b.failures = 0
	b.openedAt = time.Time{}
	return true
}
