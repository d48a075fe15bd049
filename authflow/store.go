package authflow

import (
	"sync"
	"time"
)

// Store holds live flows by id. Flows are view state: per-process,
// ephemeral, never persisted.
type Store struct {
	mu    sync.RWMutex
	flows map[string]*Flow
	ttl   time.Duration
}

// NewStore creates a store whose flows expire after ttl of
// inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{flows: make(map[string]*Flow), ttl: ttl}
}

// Put registers a flow.
func (s *Store) Put(f *Flow) {
	s.mu.Lock()
	s.flows[f.ID] = f
	s.mu.Unlock()
}

// Get returns the flow with the given id, or nil.
func (s *Store) Get(id string) *Flow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flows[id]
}

// Delete drops a flow.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.flows, id)
	s.mu.Unlock()
}

// Sweep removes flows idle past the TTL. Wired to the cron schedule
// in main.
func (s *Store) Sweep() int {
	cutoff := time.Now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, f := range s.flows {
		if f.TouchedAt().Before(cutoff) {
			delete(s.flows, id)
			removed++
		}
	}
	return removed
}
