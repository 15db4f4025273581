// Package store provides the thread-safe keyed store workers write results
// into.
//
// Like the task queue, the store owns its lock: the map is never exposed,
// only atomic Insert/Get/Len operations. A worker never holds the store lock
// and the queue lock at the same time, so no lock-ordering deadlock can
// arise between the two.
package store

import (
	"sync"

	"github.com/jzx17/digitpool/pkg/types"
)

// ResultStore maps a digit index to its computed value, safe for concurrent
// use. Each index is produced by exactly one task, so same-key writes do not
// occur in normal operation; they are still harmless if they happen.
type ResultStore struct {
	mu      sync.RWMutex
	results map[int]uint64
}

// NewResultStore creates an empty result store
func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[int]uint64),
	}
}

// Insert stores the value for index, overwriting any previous entry
func (s *ResultStore) Insert(index int, value uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[index] = value
}

// Get returns the value stored for index. A missing entry is a completeness
// violation and yields a *types.MissingResultError instead of a zero value.
func (s *ResultStore) Get(index int) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.results[index]
	if !ok {
		return 0, types.NewMissingResultError(index)
	}
	return value, nil
}

// Len returns the number of stored results
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
