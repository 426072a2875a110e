package statestore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/desi-diet/internal/domain/state"
)

// MemoryStore keeps records in process memory for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]state.Record
	now     func() time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]state.Record),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Load returns a copy of the record under key.
func (s *MemoryStore) Load(_ context.Context, key string) (state.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	if !ok {
		return state.Record{}, false, nil
	}
	rec.Data = append([]byte(nil), rec.Data...)
	return rec, true, nil
}

// Save replaces the record when expectedVersion matches.
func (s *MemoryStore) Save(_ context.Context, key string, data []byte, expectedVersion int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.records[key].Version
	if current != expectedVersion {
		return current, state.ErrVersionConflict
	}
	next := current + 1
	s.records[key] = state.Record{
		Data:      append([]byte(nil), data...),
		Version:   next,
		UpdatedAt: s.now(),
	}
	return next, nil
}

var _ state.Store = (*MemoryStore)(nil)
