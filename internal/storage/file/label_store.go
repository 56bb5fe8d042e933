// Package file implements the label store on a single JSON file.
//
// The whole mapping is rewritten on every mutation via write-temp-then-rename,
// so a crash mid-write leaves either the old file or the new one, never a
// torn mix. One mutex serializes read-modify-persist as a single critical
// section; the lock is never held across network calls.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"solana-tx-relay/internal/domain"
	"solana-tx-relay/internal/storage"
)

// LabelStore is a JSON-file-backed implementation of storage.LabelStore.
type LabelStore struct {
	path string

	mu     sync.Mutex
	labels map[string]string
	order  []string // wallets in insertion order, for stable List output
}

// Compile-time interface check.
var _ storage.LabelStore = (*LabelStore)(nil)

// NewLabelStore loads persisted labels from path. A missing file initializes
// an empty mapping; an unparsable file fails with ErrCorruptState so the
// operator notices at startup instead of silently losing labels on the next
// write.
func NewLabelStore(path string) (*LabelStore, error) {
	s := &LabelStore{
		path:   path,
		labels: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read label file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.labels); err != nil {
		return nil, fmt.Errorf("parse label file %s: %v: %w", path, err, storage.ErrCorruptState)
	}

	// JSON objects carry no order, so a reload starts from sorted keys.
	// Entries added afterwards keep insertion order.
	s.order = make([]string, 0, len(s.labels))
	for w := range s.labels {
		s.order = append(s.order, w)
	}
	sort.Strings(s.order)

	return s, nil
}

// Get returns the label for a wallet. Returns ErrNotFound if no label is set.
func (s *LabelStore) Get(_ context.Context, wallet string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	label, exists := s.labels[wallet]
	if !exists {
		return "", storage.ErrNotFound
	}
	return label, nil
}

// Set inserts or overwrites the label for a wallet. The full mapping is
// persisted before Set returns; on a write failure the in-memory state is
// rolled back so memory and file never diverge.
func (s *LabelStore) Set(_ context.Context, wallet, label string) error {
	if wallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.labels[wallet]
	s.labels[wallet] = label
	if !existed {
		s.order = append(s.order, wallet)
	}

	if err := s.persistLocked(); err != nil {
		if existed {
			s.labels[wallet] = prev
		} else {
			delete(s.labels, wallet)
			s.order = s.order[:len(s.order)-1]
		}
		return fmt.Errorf("persist labels: %w", err)
	}
	return nil
}

// Remove deletes the label for a wallet. Returns false without touching the
// file when the wallet had no label.
func (s *LabelStore) Remove(_ context.Context, wallet string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.labels[wallet]
	if !existed {
		return false, nil
	}

	delete(s.labels, wallet)
	idx := -1
	for i, w := range s.order {
		if w == wallet {
			idx = i
			break
		}
	}
	if idx >= 0 {
		s.order = append(s.order[:idx], s.order[idx+1:]...)
	}

	if err := s.persistLocked(); err != nil {
		s.labels[wallet] = prev
		if idx >= 0 {
			s.order = append(s.order, "")
			copy(s.order[idx+1:], s.order[idx:])
			s.order[idx] = wallet
		}
		return false, fmt.Errorf("persist labels: %w", err)
	}
	return true, nil
}

// List returns all entries in insertion order.
func (s *LabelStore) List(_ context.Context) ([]domain.LabelEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]domain.LabelEntry, 0, len(s.order))
	for _, w := range s.order {
		entries = append(entries, domain.LabelEntry{Wallet: w, Label: s.labels[w]})
	}
	return entries, nil
}

// persistLocked writes the full mapping atomically. Caller holds s.mu.
func (s *LabelStore) persistLocked() error {
	data, err := json.MarshalIndent(s.labels, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal labels: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace label file: %w", err)
	}
	return nil
}
