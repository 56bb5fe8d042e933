package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-tx-relay/internal/storage"
)

func TestLabelStore_SetAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewLabelStore(pool)

	require.NoError(t, store.Set(ctx, "WalletA", "alpha"))

	label, err := store.Get(ctx, "WalletA")
	require.NoError(t, err)
	assert.Equal(t, "alpha", label)
}

func TestLabelStore_SetOverwrites(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewLabelStore(pool)

	require.NoError(t, store.Set(ctx, "WalletA", "alpha"))
	require.NoError(t, store.Set(ctx, "WalletA", "updated"))

	label, err := store.Get(ctx, "WalletA")
	require.NoError(t, err)
	assert.Equal(t, "updated", label)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLabelStore_GetNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewLabelStore(pool)

	_, err := store.Get(ctx, "nonexistent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLabelStore_Remove(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewLabelStore(pool)

	require.NoError(t, store.Set(ctx, "WalletA", "alpha"))

	removed, err := store.Remove(ctx, "WalletA")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Remove(ctx, "WalletA")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = store.Get(ctx, "WalletA")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLabelStore_ListOrderedByCreation(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewLabelStore(pool)

	require.NoError(t, store.Set(ctx, "WalletB", "beta"))
	require.NoError(t, store.Set(ctx, "WalletA", "alpha"))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "WalletB", entries[0].Wallet)
	assert.Equal(t, "WalletA", entries[1].Wallet)
}
