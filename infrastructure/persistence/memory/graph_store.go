// Package memory holds the in-process snapshot of the knowledge graph.
// The engine itself is pure; this store is the single place where the
// "current graph" changes, and it only ever changes by whole-snapshot swap.
package memory

import (
	"sync"

	"cadence-backend/domain/core/aggregates"
)

// GraphStore holds the current graph aggregate behind a read-write lock.
type GraphStore struct {
	mu    sync.RWMutex
	graph *aggregates.Graph
}

// NewGraphStore creates a store seeded with the given graph.
func NewGraphStore(graph *aggregates.Graph) *GraphStore {
	return &GraphStore{graph: graph}
}

// Snapshot returns the current immutable graph. Callers may hold the
// returned aggregate for as long as they like; it is never mutated.
func (s *GraphStore) Snapshot() *aggregates.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// Replace swaps in a new graph snapshot, e.g. after a dataset reload.
func (s *GraphStore) Replace(graph *aggregates.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = graph
}
