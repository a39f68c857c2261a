package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	s := Session{
		Token:      "tok",
		IdentityID: "user1",
		ExpiresAt:  time.Now().Add(time.Minute),
	}
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "user1", got.IdentityID)

	require.NoError(t, store.Delete(ctx, "tok"))
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreMissingToken(t *testing.T) {
	store, _ := newRedisStore(t)
	_, err := store.Get(context.Background(), "never-stored")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreTTLTracksExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	s := Session{
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, store.Put(ctx, s))

	// redis evicts the key once the sliding window has passed
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStorePutExpiredDeletes(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	live := Session{Token: "tok", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, store.Put(ctx, live))

	dead := Session{Token: "tok", ExpiresAt: time.Now().Add(-time.Second)}
	require.NoError(t, store.Put(ctx, dead))

	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	err = store.Put(ctx, Session{Token: "tok", ExpiresAt: time.Now().Add(time.Minute)})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
