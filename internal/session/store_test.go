package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Save(ctx, "s1", userID, time.Minute))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting an unknown session is not an error.
	assert.NoError(t, store.Delete(ctx, "unknown"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", uuid.New(), -time.Second))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreDeleteByUser(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	ana := uuid.New()
	bob := uuid.New()

	require.NoError(t, store.Save(ctx, "ana1", ana, time.Minute))
	require.NoError(t, store.Save(ctx, "ana2", ana, time.Minute))
	require.NoError(t, store.Save(ctx, "bob1", bob, time.Minute))

	require.NoError(t, store.DeleteByUser(ctx, ana))

	_, err := store.Get(ctx, "ana1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(ctx, "ana2")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	got, err := store.Get(ctx, "bob1")
	require.NoError(t, err)
	assert.Equal(t, bob, got)
}
