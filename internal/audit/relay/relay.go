// Package relay moves audit events from the outbox to a Kafka topic.
// Delivery is at-least-once: events are marked relayed only after the
// producer acknowledges them, so a crash between produce and mark causes a
// redelivery, never a loss. Consumers dedupe on the event ID key.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"govassist/internal/audit"
)

// Relay periodically drains the outbox into Kafka.
type Relay struct {
	outbox   audit.OutboxStore
	client   *kgo.Client
	topic    string
	interval time.Duration
	batch    int
	logger   *slog.Logger
}

// NewClient builds a franz-go producer for the audit topic.
func NewClient(brokers []string) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return client, nil
}

// New constructs a relay over the given outbox and producer.
func New(outbox audit.OutboxStore, client *kgo.Client, topic string, interval time.Duration, batch int, logger *slog.Logger) *Relay {
	return &Relay{
		outbox:   outbox,
		client:   client,
		topic:    topic,
		interval: interval,
		batch:    batch,
		logger:   logger,
	}
}

// Run drains the outbox on a ticker until the context is canceled. One
// failed cycle is logged and retried on the next tick; it never stops the
// relay.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n, err := r.RelayOnce(ctx); err != nil {
				r.logger.WarnContext(ctx, "audit relay cycle failed", "error", err)
			} else if n > 0 {
				r.logger.InfoContext(ctx, "audit events relayed", "count", n)
			}
		}
	}
}

// RelayOnce drains at most one batch and returns how many events shipped.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	events, err := r.outbox.NextBatch(ctx, r.batch)
	if err != nil {
		return 0, fmt.Errorf("fetch outbox batch: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	records := make([]*kgo.Record, 0, len(events))
	ids := make([]uuid.UUID, 0, len(events))
	for _, event := range events {
		value, err := gojson.Marshal(event)
		if err != nil {
			return 0, fmt.Errorf("marshal audit event %s: %w", event.ID, err)
		}
		records = append(records, &kgo.Record{
			Topic: r.topic,
			Key:   []byte(event.ID.String()),
			Value: value,
		})
		ids = append(ids, event.ID)
	}

	if err := r.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return 0, fmt.Errorf("produce audit batch: %w", err)
	}
	if err := r.outbox.MarkRelayed(ctx, ids); err != nil {
		// Produced but not marked: the batch will be re-sent next cycle.
		// Acceptable under at-least-once delivery.
		return len(events), fmt.Errorf("mark relayed: %w", err)
	}
	return len(events), nil
}
