package storage

import (
	"errors"
	"sync"

	"hypermart/core/types"
)

// ErrCorruptStore reports a persisted record that cannot be parsed. A load
// that hits it returns no accounts at all; the store never silently drops or
// misparses data.
var ErrCorruptStore = errors.New("storage: corrupt account store")

// AccountStore is the persistence boundary for the full set of customer
// accounts. Both operations work on whole snapshots: SaveAll replaces prior
// content and LoadAll reconstructs exactly what the most recent successful
// SaveAll wrote. Record order is unspecified.
type AccountStore interface {
	LoadAll() ([]types.Account, error)
	SaveAll(accounts []types.Account) error
}

// --- In-memory store (for testing) ---

// MemStore is an in-memory AccountStore.
type MemStore struct {
	mu       sync.RWMutex
	accounts []types.Account
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// LoadAll returns a deep copy of the last saved snapshot.
func (s *MemStore) LoadAll() ([]types.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Account, 0, len(s.accounts))
	for i := range s.accounts {
		out = append(out, s.accounts[i].Clone())
	}
	return out, nil
}

// SaveAll replaces the stored snapshot with a deep copy of accounts.
func (s *MemStore) SaveAll(accounts []types.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = make([]types.Account, 0, len(accounts))
	for i := range accounts {
		s.accounts = append(s.accounts, accounts[i].Clone())
	}
	return nil
}
