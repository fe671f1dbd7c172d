package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_SetExGetExistsDelete(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetEx(ctx, "standings:SA:current", 90*time.Second, []byte(`{"a":1}`)))
	assert.Equal(t, 90*time.Second, mr.TTL("standings:SA:current"))

	got, ok, err := store.Get(ctx, "standings:SA:current")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(got))

	exists, err := store.Exists(ctx, "standings:SA:current")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "standings:SA:current"))
	exists, err = store.Exists(ctx, "standings:SA:current")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisStore_ExpiresWithTTL(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetEx(ctx, "k", time.Minute, []byte("v")))
	mr.FastForward(61 * time.Second)

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_ServerDownSurfacesError(t *testing.T) {
	store, mr := newTestRedisStore(t)
	mr.Close()

	_, _, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	require.Error(t, store.Ping(context.Background()))
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "::not-a-url", time.Second)
	require.Error(t, err)
}

func TestNewRedisClient_PingsServer(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, NewRedisStore(client).Ping(context.Background()))
}
