package memory

import (
	"context"
	"sync"

	"solana-tx-relay/internal/domain"
	"solana-tx-relay/internal/storage"
)

// LabelStore is an in-memory implementation of storage.LabelStore. Used by
// tests and by --use-memory runs; nothing survives a restart.
type LabelStore struct {
	mu     sync.RWMutex
	labels map[string]string
	order  []string
}

// NewLabelStore creates an empty in-memory label store.
func NewLabelStore() *LabelStore {
	return &LabelStore{
		labels: make(map[string]string),
	}
}

// Compile-time interface check.
var _ storage.LabelStore = (*LabelStore)(nil)

// Get returns the label for a wallet. Returns ErrNotFound if no label is set.
func (s *LabelStore) Get(_ context.Context, wallet string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	label, exists := s.labels[wallet]
	if !exists {
		return "", storage.ErrNotFound
	}
	return label, nil
}

// Set inserts or overwrites the label for a wallet.
func (s *LabelStore) Set(_ context.Context, wallet, label string) error {
	if wallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, existed := s.labels[wallet]; !existed {
		s.order = append(s.order, wallet)
	}
	s.labels[wallet] = label
	return nil
}

// Remove deletes the label for a wallet. Returns false when absent.
func (s *LabelStore) Remove(_ context.Context, wallet string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, existed := s.labels[wallet]; !existed {
		return false, nil
	}

	delete(s.labels, wallet)
	for i, w := range s.order {
		if w == wallet {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// List returns all entries in insertion order.
func (s *LabelStore) List(_ context.Context) ([]domain.LabelEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.LabelEntry, 0, len(s.order))
	for _, w := range s.order {
		entries = append(entries, domain.LabelEntry{Wallet: w, Label: s.labels[w]})
	}
	return entries, nil
}
