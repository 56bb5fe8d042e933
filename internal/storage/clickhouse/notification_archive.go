package clickhouse

import (
	"context"
	"fmt"

	"solana-tx-relay/internal/domain"
	"solana-tx-relay/internal/storage"
)

// NotificationArchive implements storage.NotificationArchive using ClickHouse.
// Rows are append-only; the MergeTree table does not enforce uniqueness and
// the archive does not need it.
type NotificationArchive struct {
	conn *Conn
}

// NewNotificationArchive creates a new NotificationArchive.
func NewNotificationArchive(conn *Conn) *NotificationArchive {
	return &NotificationArchive{conn: conn}
}

// Compile-time interface check.
var _ storage.NotificationArchive = (*NotificationArchive)(nil)

// Insert appends one notification record.
func (a *NotificationArchive) Insert(ctx context.Context, rec *domain.NotificationRecord) error {
	if rec == nil {
		return storage.ErrInvalidInput
	}

	batch, err := a.conn.PrepareBatch(ctx, `
		INSERT INTO notifications (
			wallet, token_address, symbol, amount, signature, text, delivered, sent_at_ms
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	err = batch.Append(
		rec.Wallet,
		rec.TokenAddress,
		rec.Symbol,
		rec.Amount,
		rec.Signature,
		rec.Text,
		rec.Delivered,
		uint64(rec.SentAt),
	)
	if err != nil {
		return fmt.Errorf("append to batch: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}
