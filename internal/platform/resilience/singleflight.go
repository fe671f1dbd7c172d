package resilience

import (
	"context"
	"errors"
	"sync"
)

var errFlightPanicked = errors.New("shared call panicked")

// Flight collapses concurrent calls that share a key into one execution of fn.
// The zero value is ready to use.
type Flight[T any] struct {
	mu    sync.Mutex
	calls map[string]*flightCall[T]
}

type flightCall[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Do runs fn for key unless a call for key is already running, in which case
// it waits for that call's result. A follower stops waiting when its own ctx
// ends; the leading call is never interrupted by followers. When the leading
// call ends with a context error while the follower's ctx is still live, the
// follower runs fn itself instead of inheriting the leader's cancellation.
// shared reports whether the result came from another caller.
func (f *Flight[T]) Do(ctx context.Context, key string, fn func() (T, error)) (val T, shared bool, err error) {
	for {
		f.mu.Lock()
		if f.calls == nil {
			f.calls = make(map[string]*flightCall[T])
		}
		c, ok := f.calls[key]
		if !ok {
			c = &flightCall[T]{done: make(chan struct{})}
			f.calls[key] = c
			f.mu.Unlock()
			val, err = f.lead(key, c, fn)
			return val, false, err
		}
		f.mu.Unlock()

		select {
		case <-c.done:
			if isContextError(c.err) && ctx.Err() == nil {
				continue
			}
			return c.val, true, c.err
		case <-ctx.Done():
			var zero T
			return zero, true, ctx.Err()
		}
	}
}

func (f *Flight[T]) lead(key string, c *flightCall[T], fn func() (T, error)) (T, error) {
	// A panicking fn still releases followers and the key.
	defer func() {
		f.mu.Lock()
		delete(f.calls, key)
		f.mu.Unlock()
		close(c.done)
	}()

	c.err = errFlightPanicked
	c.val, c.err = fn()
	return c.val, c.err
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// InFlight reports how many keys currently have a running call.
func (f *Flight[T]) InFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
