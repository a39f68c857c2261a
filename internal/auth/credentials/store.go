package credentials

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("credentials: identity not found")

// Identity is a registered user principal: a unique id plus the stored
// password hash. Records are owned by the Store and treated as immutable
// after population; password rotation replaces the whole record.
type Identity struct {
	ID           string
	PasswordHash string
}

// Store answers lookup-by-identity. Population happens once at startup;
// there is no mutation path at runtime, so implementations only need to be
// safe for concurrent reads.
type Store interface {
	Lookup(ctx context.Context, id string) (*Identity, error)
}

// MemoryStore holds the identity set in a plain map. The map is never
// written after New, which is what makes lock-free concurrent reads safe.
type MemoryStore struct {
	identities map[string]Identity
}

// NewMemoryStore hashes each seed password and builds the store. Plaintext
// passwords are not retained.
func NewMemoryStore(seeds map[string]string) (*MemoryStore, error) {
	identities := make(map[string]Identity, len(seeds))
	for id, password := range seeds {
		hash, err := HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("credentials: seeding %q: %w", id, err)
		}
		identities[id] = Identity{ID: id, PasswordHash: hash}
	}
	return &MemoryStore{identities: identities}, nil
}

func (m *MemoryStore) Lookup(_ context.Context, id string) (*Identity, error) {
	identity, ok := m.identities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &identity, nil
}
