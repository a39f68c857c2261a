package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLookup(t *testing.T) {
	ctx := context.Background()

	store, err := NewMemoryStore(map[string]string{"user1": "1234"})
	require.NoError(t, err)

	identity, err := store.Lookup(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, "user1", identity.ID)
	assert.True(t, VerifyPassword("1234", identity.PasswordHash))

	_, err = store.Lookup(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
