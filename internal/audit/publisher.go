package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"govassist/pkg/attrs"
)

// Publisher is the port services emit audit events through.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// OutboxPublisher writes events to the outbox store. When the context carries
// a SQL transaction the append joins it, so the event commits or rolls back
// together with the triggering write.
type OutboxPublisher struct {
	store OutboxStore
}

// NewOutboxPublisher constructs a publisher over the given outbox store.
func NewOutboxPublisher(store OutboxStore) *OutboxPublisher {
	return &OutboxPublisher{store: store}
}

// Emit assigns identity, category, and timestamp defaults, then appends.
func (p *OutboxPublisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Category == "" {
		event.Category = event.Action.Category()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return p.store.Append(ctx, event)
}

// Log emits an audit event and writes a matching structured log line. The
// kvs slice follows slog's alternating key-value convention; "subject",
// "decision", and "reason" keys are lifted into the event.
func Log(ctx context.Context, logger *slog.Logger, publisher Publisher, action Action, requestID string, kvs ...any) {
	if logger != nil {
		logger.InfoContext(ctx, string(action), append([]any{"request_id", requestID}, kvs...)...)
	}
	if publisher == nil {
		return
	}
	_ = publisher.Emit(ctx, Event{
		Action:    action,
		Subject:   attrs.ExtractString(kvs, "subject"),
		Decision:  attrs.ExtractString(kvs, "decision"),
		Reason:    attrs.ExtractString(kvs, "reason"),
		RequestID: requestID,
	})
}
