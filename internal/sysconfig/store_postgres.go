package sysconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"govassist/pkg/platform/sentinel"
)

// PostgresStore persists configuration settings in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed configuration store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (*Setting, error) {
	var setting Setting
	err := s.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at FROM system_configurations WHERE key = $1`, key).
		Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get configuration: %w", err)
	}
	return &setting, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Setting, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value, updated_at FROM system_configurations ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var setting Setting
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan configuration: %w", err)
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

func (s *PostgresStore) Upsert(ctx context.Context, setting Setting) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO system_configurations (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, setting.Key, setting.Value, setting.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert configuration: %w", err)
	}
	return nil
}
