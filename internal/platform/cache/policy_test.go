package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Items []int  `json:"items"`
}

type brokenStore struct{ err error }

func (s brokenStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, s.err }
func (s brokenStore) SetEx(context.Context, string, time.Duration, []byte) error {
	return s.err
}
func (s brokenStore) Exists(context.Context, string) (bool, error) { return false, s.err }
func (s brokenStore) Delete(context.Context, string) error         { return s.err }
func (s brokenStore) Ping(context.Context) error                   { return s.err }

func newTestCache(t *testing.T, retention time.Duration) (*Cache, *MemoryStore, *time.Time) {
	t.Helper()
	store, err := NewMemoryStore(32)
	require.NoError(t, err)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store.now = clock

	c := New(store, retention)
	c.SetClock(clock)
	return c, store, &now
}

func TestCache_FreshThenStale(t *testing.T) {
	c, _, now := newTestCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "fixtures:SA:3", 5*time.Minute, payload{Name: "md3", Items: []int{1, 2}}))

	var fresh payload
	lookup := c.Fresh(ctx, "fixtures:SA:3", &fresh)
	require.True(t, lookup.Hit())
	assert.Equal(t, "md3", fresh.Name)
	assert.Equal(t, []int{1, 2}, fresh.Items)

	*now = now.Add(5 * time.Minute)
	var expired payload
	lookup = c.Fresh(ctx, "fixtures:SA:3", &expired)
	assert.Equal(t, ResultExpired, lookup.Result)
	assert.Empty(t, expired.Name)

	var stale payload
	lookup = c.Stale(ctx, "fixtures:SA:3", &stale)
	require.True(t, lookup.Hit())
	assert.Equal(t, "md3", stale.Name)

	*now = now.Add(time.Hour)
	lookup = c.Stale(ctx, "fixtures:SA:3", &stale)
	assert.Equal(t, ResultMiss, lookup.Result, "stale copy must disappear after retention")
}

func TestCache_EmptyListIsAHit(t *testing.T) {
	c, _, _ := newTestCache(t, 0)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "live_matches:SA:2026-02-11", time.Minute, []int{}))

	var got []int
	lookup := c.Fresh(ctx, "live_matches:SA:2026-02-11", &got)
	require.True(t, lookup.Hit())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCache_StoreFailureIsTyped(t *testing.T) {
	storeErr := errors.New("connection refused")
	c := New(brokenStore{err: storeErr}, time.Hour)

	var got payload
	lookup := c.Fresh(context.Background(), "k", &got)
	assert.Equal(t, ResultFailed, lookup.Result)
	assert.ErrorIs(t, lookup.Err, storeErr)

	assert.ErrorIs(t, c.Put(context.Background(), "k", time.Minute, got), storeErr)
}

func TestCache_CorruptEnvelopeIsFailure(t *testing.T) {
	c, store, _ := newTestCache(t, 0)
	ctx := context.Background()
	require.NoError(t, store.SetEx(ctx, "k", time.Minute, []byte("not json")))

	var got payload
	lookup := c.Stale(ctx, "k", &got)
	assert.Equal(t, ResultFailed, lookup.Result)
	assert.Error(t, lookup.Err)
}

func TestCache_PhysicalTTLIncludesRetention(t *testing.T) {
	c, store, now := newTestCache(t, 2*time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k", time.Hour, payload{Name: "x"}))

	*now = now.Add(3*time.Hour - time.Second)
	ok, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	*now = now.Add(time.Second)
	ok, err = store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_RejectsNonPositiveTTL(t *testing.T) {
	c, _, _ := newTestCache(t, 0)
	assert.Error(t, c.Put(context.Background(), "k", 0, payload{}))
}
