package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"govassist/pkg/platform/tx"
)

// PostgresOutbox persists audit events in the audit_outbox table. Appends
// join an ambient transaction when one is carried in the context, which is
// what makes the outbox transactional.
type PostgresOutbox struct {
	db *sql.DB
}

// NewPostgresOutbox constructs a PostgreSQL-backed outbox store.
func NewPostgresOutbox(db *sql.DB) *PostgresOutbox {
	return &PostgresOutbox{db: db}
}

func (s *PostgresOutbox) Append(ctx context.Context, event Event) error {
	var execer interface {
		ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	} = s.db
	if t, ok := tx.From(ctx); ok {
		execer = t
	}

	query := `
		INSERT INTO audit_outbox (id, category, action, actor, subject, decision, reason, request_id, ip, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := execer.ExecContext(ctx, query,
		event.ID,
		string(event.Category),
		string(event.Action),
		event.Actor,
		event.Subject,
		event.Decision,
		event.Reason,
		event.RequestID,
		event.IP,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresOutbox) NextBatch(ctx context.Context, limit int) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, action, actor, subject, decision, reason, request_id, ip, occurred_at
		FROM audit_outbox
		WHERE relayed_at IS NULL
		ORDER BY occurred_at, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch audit batch: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var category, action string
		if err := rows.Scan(&e.ID, &category, &action, &e.Actor, &e.Subject,
			&e.Decision, &e.Reason, &e.RequestID, &e.IP, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Category = Category(category)
		e.Action = Action(action)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *PostgresOutbox) MarkRelayed(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE audit_outbox SET relayed_at = NOW()
		WHERE id = ANY($1::uuid[])
	`, pq.Array(idStrings))
	if err != nil {
		return fmt.Errorf("mark audit events relayed: %w", err)
	}
	return nil
}
