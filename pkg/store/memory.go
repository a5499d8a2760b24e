package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps run records in memory. It backs the server when no
// MongoDB is configured and doubles as the test store.
type MemoryStore struct {
	mu   sync.RWMutex
	runs []RunRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save appends a record.
func (s *MemoryStore) Save(ctx context.Context, rec RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, rec)
	return nil
}

// Get returns the record for a run ID.
func (s *MemoryStore) Get(ctx context.Context, runID string) (RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.runs {
		if rec.RunID == runID {
			return rec, nil
		}
	}
	return RunRecord{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
}

// List returns the most recent records, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.runs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]RunRecord, 0, n)
	for i := len(s.runs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
