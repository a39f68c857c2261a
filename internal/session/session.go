package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound covers both unknown and expired tokens; callers issue a
	// fresh anonymous session in either case.
	ErrNotFound = errors.New("session: not found")

	// ErrStoreUnavailable wraps infrastructure failures from the backing
	// store. Fatal for the request, not retried inline.
	ErrStoreUnavailable = errors.New("session: store unavailable")
)

// Session binds an opaque token to an identity (or none) with a sliding
// expiry. IdentityID empty means the session is anonymous.
type Session struct {
	Token      string    `json:"token"`
	IdentityID string    `json:"identity_id,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Authenticated reports whether the session is bound to an identity.
func (s Session) Authenticated() bool {
	return s.IdentityID != ""
}

// Store defines how session records are persisted. Writes replace the whole
// record, so a single Put is the unit of atomicity; implementations must
// never expose a half-updated session. Get must not return expired records.
type Store interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
