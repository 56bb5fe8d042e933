package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-tx-relay/internal/domain"
	"solana-tx-relay/internal/storage"
)

func newTestStore(t *testing.T) (*LabelStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "labels.json")
	store, err := NewLabelStore(path)
	require.NoError(t, err)
	return store, path
}

func TestLabelStore_SetGetRemove(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "WalletA", "alpha"))

	label, err := store.Get(ctx, "WalletA")
	require.NoError(t, err)
	assert.Equal(t, "alpha", label)

	removed, err := store.Remove(ctx, "WalletA")
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = store.Get(ctx, "WalletA")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLabelStore_OverwriteKeepsOneEntry(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "WalletA", "one"))
	require.NoError(t, store.Set(ctx, "WalletB", "two"))
	require.NoError(t, store.Set(ctx, "WalletA", "updated"))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.LabelEntry{
		{Wallet: "WalletA", Label: "updated"},
		{Wallet: "WalletB", Label: "two"},
	}, entries)
}

func TestLabelStore_PersistRoundTrip(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "WalletA", "alpha"))
	require.NoError(t, store.Set(ctx, "WalletB", "beta"))

	// Fresh load sees the same mapping.
	reloaded, err := NewLabelStore(path)
	require.NoError(t, err)

	label, err := reloaded.Get(ctx, "WalletA")
	require.NoError(t, err)
	assert.Equal(t, "alpha", label)

	entries, err := reloaded.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLabelStore_PersistedFormat(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "WalletA", "alpha"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var m map[string]string
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, map[string]string{"WalletA": "alpha"}, m)
}

func TestLabelStore_RemoveAbsentDoesNotPersist(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	removed, err := store.Remove(ctx, "NoSuchWallet")
	require.NoError(t, err)
	assert.False(t, removed)

	// No mutation happened, so nothing was written.
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLabelStore_MissingFileStartsEmpty(t *testing.T) {
	store, err := NewLabelStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLabelStore_CorruptFileFailsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewLabelStore(path)
	assert.ErrorIs(t, err, storage.ErrCorruptState)
}

func TestLabelStore_NoTempFilesLeftBehind(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "WalletA", "alpha"))
	require.NoError(t, store.Set(ctx, "WalletB", "beta"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the label file should remain")
}

func TestLabelStore_EmptyWalletRejected(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Set(context.Background(), "", "label")
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
