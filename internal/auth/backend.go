package auth

import (
	"context"
	"errors"

	"item-portal/internal/auth/credentials"
)

var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Backend composes the credential store with password verification. It is a
// pure read layer: session creation and mutation belong to the caller.
type Backend struct {
	store credentials.Store

	// dummyHash is verified against on the unknown-user path so a login
	// probe pays the same hashing cost whether or not the id exists.
	dummyHash string
}

func NewBackend(store credentials.Store) (*Backend, error) {
	dummy, err := credentials.HashPassword("decoy-password-for-timing-parity")
	if err != nil {
		return nil, err
	}
	return &Backend{store: store, dummyHash: dummy}, nil
}

// Authenticate verifies a credential pair against the store. Unknown user
// and wrong password are indistinguishable to the caller: both return
// ErrInvalidCredentials. Store failures are absorbed into the same result;
// an authentication check never fails open.
func (b *Backend) Authenticate(ctx context.Context, id, password string) (*Identity, error) {
	identity, err := b.store.Lookup(ctx, id)
	if err != nil {
		// Burn the hashing cost anyway so the miss path is not
		// trivially faster than the mismatch path.
		credentials.VerifyPassword(password, b.dummyHash)
		return nil, ErrInvalidCredentials
	}

	if !credentials.VerifyPassword(password, identity.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return identity, nil
}

// Load re-hydrates the identity bound to a session. Returns nil without an
// error when the identity no longer resolves; the caller must treat that as
// not authenticated.
func (b *Backend) Load(ctx context.Context, id string) (*Identity, error) {
	identity, err := b.store.Lookup(ctx, id)
	if err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return identity, nil
}
