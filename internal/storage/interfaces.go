package storage

import (
	"context"

	"solana-tx-relay/internal/domain"
)

// LabelStore provides access to the wallet→label mapping. Implementations own
// the mapping exclusively: every mutation is durable before the call returns,
// and concurrent mutations are serialized internally.
type LabelStore interface {
	// Get returns the label for a wallet. Returns ErrNotFound if no label is set.
	Get(ctx context.Context, wallet string) (string, error)

	// Set inserts or overwrites the label for a wallet and persists the change.
	Set(ctx context.Context, wallet, label string) error

	// Remove deletes the label for a wallet and persists the change.
	// Returns false (and no error) when the wallet had no label.
	Remove(ctx context.Context, wallet string) (bool, error)

	// List returns all entries in a stable order (insertion order).
	List(ctx context.Context) ([]domain.LabelEntry, error)
}

// NotificationArchive records notification attempts for later inspection.
// Writes are best-effort; callers log failures and continue.
type NotificationArchive interface {
	// Insert appends one notification record.
	Insert(ctx context.Context, rec *domain.NotificationRecord) error
}
