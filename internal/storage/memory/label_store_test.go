package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-tx-relay/internal/domain"
	"solana-tx-relay/internal/storage"
)

func TestLabelStore_SetGetRemove(t *testing.T) {
	store := NewLabelStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "WalletA")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Set(ctx, "WalletA", "alpha"))

	label, err := store.Get(ctx, "WalletA")
	require.NoError(t, err)
	assert.Equal(t, "alpha", label)

	removed, err := store.Remove(ctx, "WalletA")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Remove(ctx, "WalletA")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLabelStore_ListInsertionOrder(t *testing.T) {
	store := NewLabelStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "b", "2"))
	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2-updated"))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.LabelEntry{
		{Wallet: "b", Label: "2-updated"},
		{Wallet: "a", Label: "1"},
	}, entries)
}

func TestNotificationArchive_Insert(t *testing.T) {
	archive := NewNotificationArchive()
	ctx := context.Background()

	rec := &domain.NotificationRecord{
		Wallet:    "WalletA",
		Symbol:    "TST",
		Amount:    0.5,
		Signature: "SIG1",
		Delivered: true,
		SentAt:    1700000000000,
	}
	require.NoError(t, archive.Insert(ctx, rec))

	// Mutating the original must not affect the stored copy.
	rec.Symbol = "changed"

	all := archive.All()
	require.Len(t, all, 1)
	assert.Equal(t, "TST", all[0].Symbol)
}

func TestNotificationArchive_NilRecord(t *testing.T) {
	archive := NewNotificationArchive()

	err := archive.Insert(context.Background(), nil)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
