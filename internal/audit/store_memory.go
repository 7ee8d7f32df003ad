package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryOutbox is an in-memory OutboxStore for unit tests and for running
// without Postgres.
type MemoryOutbox struct {
	mu      sync.Mutex
	events  []Event
	relayed map[uuid.UUID]bool
}

// NewMemoryOutbox constructs an empty in-memory outbox.
func NewMemoryOutbox() *MemoryOutbox {
	return &MemoryOutbox{relayed: make(map[uuid.UUID]bool)}
}

func (s *MemoryOutbox) Append(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryOutbox) NextBatch(ctx context.Context, limit int) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var batch []Event
	for _, e := range s.events {
		if s.relayed[e.ID] {
			continue
		}
		batch = append(batch, e)
		if len(batch) >= limit {
			break
		}
	}
	return batch, nil
}

func (s *MemoryOutbox) MarkRelayed(ctx context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.relayed[id] = true
	}
	return nil
}

// All returns every appended event, relayed or not. Test helper.
func (s *MemoryOutbox) All() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
