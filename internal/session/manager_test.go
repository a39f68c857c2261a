package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, window time.Duration) *Manager {
	t.Helper()
	store := NewMemoryStore(time.Hour) // janitor irrelevant for these tests
	t.Cleanup(store.Close)
	return NewManager(store, window)
}

func TestCreateAnonymous(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, time.Minute)

	s, err := m.CreateAnonymous(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)
	assert.False(t, s.Authenticated())

	resolved, err := m.Resolve(ctx, s.Token)
	require.NoError(t, err)
	assert.False(t, resolved.Authenticated())
}

func TestBindThenUnbind(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, time.Minute)

	s, err := m.CreateAnonymous(ctx)
	require.NoError(t, err)

	_, err = m.Bind(ctx, s.Token, "user1")
	require.NoError(t, err)

	resolved, err := m.Resolve(ctx, s.Token)
	require.NoError(t, err)
	assert.True(t, resolved.Authenticated())
	assert.Equal(t, "user1", resolved.IdentityID)

	require.NoError(t, m.Unbind(ctx, s.Token))

	resolved, err = m.Resolve(ctx, s.Token)
	require.NoError(t, err)
	assert.False(t, resolved.Authenticated())
	assert.Empty(t, resolved.IdentityID)
}

func TestUnbindIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, time.Minute)

	s, err := m.CreateAnonymous(ctx)
	require.NoError(t, err)
	_, err = m.Bind(ctx, s.Token, "user1")
	require.NoError(t, err)

	require.NoError(t, m.Unbind(ctx, s.Token))
	require.NoError(t, m.Unbind(ctx, s.Token))

	resolved, err := m.Resolve(ctx, s.Token)
	require.NoError(t, err)
	assert.False(t, resolved.Authenticated())

	// unknown token: still no error
	require.NoError(t, m.Unbind(ctx, "never-issued"))
}

func TestResolveUnknownToken(t *testing.T) {
	m := newTestManager(t, time.Minute)
	_, err := m.Resolve(context.Background(), "never-issued")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSlidingExpiry(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 80*time.Millisecond)

	s, err := m.CreateAnonymous(ctx)
	require.NoError(t, err)
	_, err = m.Bind(ctx, s.Token, "user1")
	require.NoError(t, err)

	// activity keeps the session alive past the original window
	for i := 0; i < 3; i++ {
		time.Sleep(40 * time.Millisecond)
		require.NoError(t, m.Touch(ctx, s.Token))
	}

	resolved, err := m.Resolve(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, "user1", resolved.IdentityID)

	// no activity: expired on next resolve
	time.Sleep(120 * time.Millisecond)
	_, err = m.Resolve(ctx, s.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentTouchesOnOneToken(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, time.Minute)

	s, err := m.CreateAnonymous(ctx)
	require.NoError(t, err)
	_, err = m.Bind(ctx, s.Token, "user1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, m.Touch(ctx, s.Token))
		}()
	}
	wg.Wait()

	resolved, err := m.Resolve(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, "user1", resolved.IdentityID)
}

func TestOperationsOnDistinctTokensAreIndependent(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, time.Minute)

	a, err := m.CreateAnonymous(ctx)
	require.NoError(t, err)
	b, err := m.CreateAnonymous(ctx)
	require.NoError(t, err)

	_, err = m.Bind(ctx, a.Token, "user1")
	require.NoError(t, err)
	_, err = m.Bind(ctx, b.Token, "user2")
	require.NoError(t, err)
	require.NoError(t, m.Unbind(ctx, a.Token))

	resolvedA, err := m.Resolve(ctx, a.Token)
	require.NoError(t, err)
	assert.False(t, resolvedA.Authenticated())

	resolvedB, err := m.Resolve(ctx, b.Token)
	require.NoError(t, err)
	assert.Equal(t, "user2", resolvedB.IdentityID)
}
