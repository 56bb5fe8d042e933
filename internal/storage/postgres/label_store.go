package postgres

import (
	"context"
	"fmt"

	"solana-tx-relay/internal/domain"
	"solana-tx-relay/internal/storage"
)

// LabelStore implements storage.LabelStore using PostgreSQL. Durability comes
// from the database, so there is no separate persist step; each mutation is
// one statement.
type LabelStore struct {
	pool *Pool
}

// NewLabelStore creates a new LabelStore.
func NewLabelStore(pool *Pool) *LabelStore {
	return &LabelStore{pool: pool}
}

// Compile-time interface check.
var _ storage.LabelStore = (*LabelStore)(nil)

// Get returns the label for a wallet. Returns ErrNotFound if no label is set.
func (s *LabelStore) Get(ctx context.Context, wallet string) (string, error) {
	query := `
		SELECT label
		FROM wallet_labels
		WHERE wallet = $1
	`

	var label string
	err := s.pool.QueryRow(ctx, query, wallet).Scan(&label)
	if err != nil {
		if isNotFoundError(err) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("get label: %w", err)
	}
	return label, nil
}

// Set inserts or overwrites the label for a wallet.
func (s *LabelStore) Set(ctx context.Context, wallet, label string) error {
	if wallet == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO wallet_labels (wallet, label)
		VALUES ($1, $2)
		ON CONFLICT (wallet) DO UPDATE
		SET label = EXCLUDED.label, updated_at = now()
	`

	_, err := s.pool.Exec(ctx, query, wallet, label)
	if err != nil {
		return fmt.Errorf("set label: %w", err)
	}
	return nil
}

// Remove deletes the label for a wallet. Returns false when absent.
func (s *LabelStore) Remove(ctx context.Context, wallet string) (bool, error) {
	query := `
		DELETE FROM wallet_labels
		WHERE wallet = $1
	`

	tag, err := s.pool.Exec(ctx, query, wallet)
	if err != nil {
		return false, fmt.Errorf("remove label: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List returns all entries ordered by creation time, oldest first.
func (s *LabelStore) List(ctx context.Context) ([]domain.LabelEntry, error) {
	query := `
		SELECT wallet, label
		FROM wallet_labels
		ORDER BY created_at ASC, wallet ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	defer rows.Close()

	var entries []domain.LabelEntry
	for rows.Next() {
		var e domain.LabelEntry
		if err := rows.Scan(&e.Wallet, &e.Label); err != nil {
			return nil, fmt.Errorf("scan label entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate labels: %w", err)
	}
	return entries, nil
}
