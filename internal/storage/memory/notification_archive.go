package memory

import (
	"context"
	"sync"

	"solana-tx-relay/internal/domain"
	"solana-tx-relay/internal/storage"
)

// NotificationArchive is an in-memory implementation of
// storage.NotificationArchive.
type NotificationArchive struct {
	mu      sync.RWMutex
	records []*domain.NotificationRecord
}

// NewNotificationArchive creates an empty in-memory archive.
func NewNotificationArchive() *NotificationArchive {
	return &NotificationArchive{}
}

// Compile-time interface check.
var _ storage.NotificationArchive = (*NotificationArchive)(nil)

// Insert appends one notification record.
func (a *NotificationArchive) Insert(_ context.Context, rec *domain.NotificationRecord) error {
	if rec == nil {
		return storage.ErrInvalidInput
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	recCopy := *rec
	a.records = append(a.records, &recCopy)
	return nil
}

// All returns a snapshot of every archived record, in insertion order.
func (a *NotificationArchive) All() []*domain.NotificationRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]*domain.NotificationRecord, len(a.records))
	for i, r := range a.records {
		recCopy := *r
		out[i] = &recCopy
	}
	return out
}
