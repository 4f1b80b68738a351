package storage

import (
	"context"
	"sync"

	"github.com/eugenenazirov/binpack/internal/experiment"
)

// Storage keeps the results of constructor runs.
type Storage interface {
	SaveResult(ctx context.Context, result experiment.Result) error
	ListResults(ctx context.Context) ([]experiment.Result, error)
}

// MemoryStorage keeps results in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu      sync.RWMutex
	results []experiment.Result
}

// NewMemoryStorage returns an empty store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// SaveResult appends result to the store.
func (s *MemoryStorage) SaveResult(_ context.Context, result experiment.Result) error {
	s.mu.Lock()
	s.results = append(s.results, result)
	s.mu.Unlock()

	return nil
}

// ListResults returns a copy of every stored result in insertion order.
func (s *MemoryStorage) ListResults(_ context.Context) ([]experiment.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]experiment.Result, len(s.results))
	copy(out, s.results)
	return out, nil
}
