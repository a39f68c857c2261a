// Package items is the external collaborator behind the protected query.
// The auth core guarantees ListFor is only ever called with an identity the
// gate has verified; nothing here re-checks that.
package items

import (
	"context"
)

type Store interface {
	ListFor(ctx context.Context, identityID string) ([]string, error)
}

// MemoryStore serves fixed per-identity item lists. Read-only after New.
type MemoryStore struct {
	items map[string][]string
}

func NewMemoryStore(items map[string][]string) *MemoryStore {
	if items == nil {
		items = map[string][]string{}
	}
	return &MemoryStore{items: items}
}

// DefaultItems mirrors the demo fixture: each seeded user owns a small list.
func DefaultItems() map[string][]string {
	return map[string][]string{
		"user1": {"notebook", "pencil", "lamp"},
		"user2": {"keyboard", "mug"},
	}
}

func (m *MemoryStore) ListFor(_ context.Context, identityID string) ([]string, error) {
	list := m.items[identityID]
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}
