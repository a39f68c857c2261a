package session

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"
)

const DefaultWindow = 10 * time.Minute

const lockStripes = 64

// Manager owns the session state machine:
//
//	Anonymous --Bind--> Authenticated --Unbind/expiry--> Anonymous/gone
//
// with Touch renewing the sliding expiry on activity. All mutations go
// through a read-modify-write under a per-token stripe lock, so overlapping
// requests on one token linearize while unrelated tokens proceed in
// parallel. The store write is a whole-record Put, never a field at a time.
type Manager struct {
	store  Store
	window time.Duration

	locks [lockStripes]sync.Mutex
}

func NewManager(store Store, window time.Duration) *Manager {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Manager{store: store, window: window}
}

// Window returns the configured sliding-expiry window.
func (m *Manager) Window() time.Duration {
	return m.window
}

func (m *Manager) lock(token string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(token))
	return &m.locks[h.Sum32()%lockStripes]
}

// CreateAnonymous issues a fresh anonymous session. Anonymous sessions use
// the same sliding window as authenticated ones, so drive-by clients cannot
// grow the table indefinitely.
func (m *Manager) CreateAnonymous(ctx context.Context) (Session, error) {
	token, err := GenerateToken()
	if err != nil {
		return Session{}, err
	}

	s := Session{
		Token:     token,
		ExpiresAt: time.Now().Add(m.window),
	}
	if err := m.store.Put(ctx, s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Resolve looks a token up. Expired and unknown tokens are the same case:
// ErrNotFound, and the caller issues a new anonymous session.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	return m.store.Get(ctx, token)
}

// Bind transitions the session to Authenticated and restarts the sliding
// window.
func (m *Manager) Bind(ctx context.Context, token, identityID string) (*Session, error) {
	mu := m.lock(token)
	mu.Lock()
	defer mu.Unlock()

	s, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	s.IdentityID = identityID
	s.ExpiresAt = time.Now().Add(m.window)

	if err := m.store.Put(ctx, *s); err != nil {
		return nil, err
	}
	return s, nil
}

// Touch renews the sliding expiry. Called on every request that resolved a
// live session; inactivity, not absolute age, is what ends a session.
func (m *Manager) Touch(ctx context.Context, token string) error {
	mu := m.lock(token)
	mu.Lock()
	defer mu.Unlock()

	s, err := m.store.Get(ctx, token)
	if err != nil {
		return err
	}

	s.ExpiresAt = time.Now().Add(m.window)
	return m.store.Put(ctx, *s)
}

// Unbind demotes the session to Anonymous. Idempotent: unbinding an already
// anonymous or missing session is not an error.
func (m *Manager) Unbind(ctx context.Context, token string) error {
	mu := m.lock(token)
	mu.Lock()
	defer mu.Unlock()

	s, err := m.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	s.IdentityID = ""
	s.ExpiresAt = time.Now().Add(m.window)
	return m.store.Put(ctx, *s)
}
