package resilience

import (
	"sync"
	"time"
)

// BreakerStatus is a point-in-time view of one named breaker.
type BreakerStatus struct {
	Name     string       `json:"name"`
	State    CircuitState `json:"state"`
	Failures int          `json:"failures"`
	OpenedAt *time.Time   `json:"opened_at,omitempty"`
}

// BreakerRegistry owns one breaker per dependency name. Breakers are created
// up front and live for the lifetime of the registry.
type BreakerRegistry struct {
	cfg      CircuitBreakerConfig
	order    []string
	breakers map[string]*CircuitBreaker

	mu       sync.RWMutex
	observer func(name string, from, to CircuitState, failures int)
}

func NewBreakerRegistry(cfg CircuitBreakerConfig, names ...string) *BreakerRegistry {
	cfg = NormalizeCircuitBreakerConfig(cfg)
	r := &BreakerRegistry{
		cfg:      cfg,
		order:    make([]string, 0, len(names)),
		breakers: make(map[string]*CircuitBreaker, len(names)),
	}
	for _, name := range names {
		if _, exists := r.breakers[name]; exists || name == "" {
			continue
		}
		breaker := NewCircuitBreaker(cfg.MaxFailures, cfg.ResetTimeout)
		breaker.OnStateChange(r.notify(name))
		r.breakers[name] = breaker
		r.order = append(r.order, name)
	}
	return r
}

// Observe sets the callback fired on every breaker transition.
func (r *BreakerRegistry) Observe(fn func(name string, from, to CircuitState, failures int)) {
	r.mu.Lock()
	r.observer = fn
	r.mu.Unlock()
}

// Get returns the breaker for name. A disabled registry returns nil so callers
// never skip or count against a dependency.
func (r *BreakerRegistry) Get(name string) *CircuitBreaker {
	if r == nil || !r.cfg.Enabled {
		return nil
	}
	return r.breakers[name]
}

func (r *BreakerRegistry) Config() CircuitBreakerConfig {
	return r.cfg
}

func (r *BreakerRegistry) Snapshot() []BreakerStatus {
	if r == nil {
		return nil
	}
	out := make([]BreakerStatus, 0, len(r.order))
	for _, name := range r.order {
		snap := r.breakers[name].Snapshot()
		status := BreakerStatus{
			Name:     name,
			State:    snap.State,
			Failures: snap.Failures,
		}
		if !snap.OpenedAt.IsZero() {
			openedAt := snap.OpenedAt
			status.OpenedAt = &openedAt
		}
		out = append(out, status)
	}
	return out
}

func (r *BreakerRegistry) notify(name string) StateChangeFunc {
	return func(from, to CircuitState, failures int) {
		r.mu.RLock()
		observer := r.observer
		r.mu.RUnlock()
		if observer != nil {
			observer(name, from, to, failures)
		}
	}
}

// SetClock replaces the time source of every breaker.
func (r *BreakerRegistry) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	for _, breaker := range r.breakers {
		breaker.mu.Lock()
		breaker.now = now
		breaker.mu.Unlock()
	}
}
