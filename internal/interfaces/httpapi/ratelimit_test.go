package httpapi

import (
	"testing"
	"time"
)

func TestKeyedLimiter_NilAllowsEverything(t *testing.T) {
	var limiter *KeyedLimiter
	if ok, _ := limiter.Allow("any"); !ok {
		t.Fatalf("nil limiter must allow")
	}
	if NewKeyedLimiter(0, time.Minute) != nil {
		t.Fatalf("expected nil limiter when requests=0")
	}
}

func TestKeyedLimiter_BudgetIsPerKey(t *testing.T) {
	limiter := NewKeyedLimiter(1, time.Minute)
	now := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	if ok, _ := limiter.Allow("a"); !ok {
		t.Fatalf("first request for a must pass")
	}
	ok, retryAfter := limiter.Allow("a")
	if ok {
		t.Fatalf("second request for a must be limited")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Fatalf("unexpected retry after: %s", retryAfter)
	}
	if ok, _ := limiter.Allow("b"); !ok {
		t.Fatalf("key b has its own budget")
	}

	now = now.Add(time.Minute)
	if ok, _ := limiter.Allow("a"); !ok {
		t.Fatalf("budget for a must refill after the window")
	}
}
