package sink

import (
	"context"
	"sync"

	"namereg/internal/registry/models"
)

// InMemoryEventStore keeps the most recent events in a bounded ring.
// Used in tests and as the default when no database is configured.
type InMemoryEventStore struct {
	mu     sync.RWMutex
	events []models.Event
	cap    int
}

// NewInMemoryEventStore creates a store retaining at most capacity events.
func NewInMemoryEventStore(capacity int) *InMemoryEventStore {
	return &InMemoryEventStore{cap: capacity}
}

// Append stores an event, evicting the oldest when over capacity.
func (s *InMemoryEventStore) Append(_ context.Context, event models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) > s.cap {
		s.events = s.events[len(s.events)-s.cap:]
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (s *InMemoryEventStore) Recent(_ context.Context, limit int) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	recent := make([]models.Event, 0, limit)
	for i := len(s.events) - 1; i >= len(s.events)-limit; i-- {
		recent = append(recent, s.events[i])
	}
	return recent, nil
}
