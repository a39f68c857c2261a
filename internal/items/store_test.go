package items

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreListFor(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(DefaultItems())

	list, err := store.ListFor(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, []string{"notebook", "pencil", "lamp"}, list)

	// unknown identity: empty list, not an error
	list, err = store.ListFor(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(map[string][]string{"user1": {"a", "b"}})

	list, err := store.ListFor(ctx, "user1")
	require.NoError(t, err)
	list[0] = "mutated"

	again, err := store.ListFor(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, again)
}
