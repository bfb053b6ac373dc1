package store

import (
	"context"
	"sync"

	"github.com/mrz1836/syncstatus/internal/ctxutil"
	"github.com/mrz1836/syncstatus/internal/domain"
)

// MemoryStore keeps the outcome in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	outcome domain.SyncOutcome
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Read implements LastSync.
func (s *MemoryStore) Read() domain.SyncOutcome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outcome
}

// Record implements LastSync.
func (s *MemoryStore) Record(ctx context.Context, outcome domain.SyncOutcome) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.outcome = outcome.Normalize()
	s.mu.Unlock()
	return nil
}

// Close implements LastSync.
func (s *MemoryStore) Close() error {
	return nil
}
