package audit

import (
	"context"

	"github.com/google/uuid"
)

// OutboxStore persists audit events until the relay moves them to Kafka.
type OutboxStore interface {
	// Append stores an event. Joins an ambient SQL transaction if present.
	Append(ctx context.Context, event Event) error
	// NextBatch returns up to limit unrelayed events in append order.
	NextBatch(ctx context.Context, limit int) ([]Event, error)
	// MarkRelayed flags events as delivered so they are not fetched again.
	MarkRelayed(ctx context.Context, ids []uuid.UUID) error
}
