package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"govassist/internal/admin/models"
	id "govassist/pkg/domain"
	"govassist/pkg/platform/sentinel"
	"govassist/pkg/platform/tx"
)

// Postgres persists administrators in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed administrator store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) q(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

const adminColumns = `id, username, email, password_hash, consecutive_failed_logins,
	failed_login_starttime, locked_until, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, admin *models.Administrator) error {
	query := `
		INSERT INTO administrators (` + adminColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.q(ctx).ExecContext(ctx, query,
		admin.ID.String(),
		admin.Username,
		admin.Email,
		admin.PasswordHash,
		admin.ConsecutiveFailedLogins,
		admin.FailedLoginStarttime,
		admin.LockedUntil,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert administrator: %w", err)
	}
	return nil
}

func (s *Postgres) GetByUsername(ctx context.Context, username string) (*models.Administrator, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM administrators WHERE username = $1`, username)

	admin, err := scanAdministrator(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get administrator: %w", err)
	}
	return admin, nil
}

func (s *Postgres) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.q(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM administrators`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count administrators: %w", err)
	}
	return count, nil
}

// RecordFailure advances the failure counter in one atomic statement. A
// window anchor older than cutoff means the previous window expired, so the
// counter restarts at 1 with a fresh anchor.
func (s *Postgres) RecordFailure(ctx context.Context, username string, cutoff, now time.Time) (*models.Administrator, error) {
	query := `
		UPDATE administrators SET
			consecutive_failed_logins = CASE
				WHEN failed_login_starttime IS NULL OR failed_login_starttime < $2 THEN 1
				ELSE consecutive_failed_logins + 1
			END,
			failed_login_starttime = CASE
				WHEN failed_login_starttime IS NULL OR failed_login_starttime < $2 THEN $3
				ELSE failed_login_starttime
			END,
			updated_at = $3
		WHERE username = $1
		RETURNING ` + adminColumns

	admin, err := scanAdministrator(s.q(ctx).QueryRowContext(ctx, query, username, cutoff, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("record login failure: %w", err)
	}
	return admin, nil
}

// ApplyLock sets the lock only when the threshold is met and no active lock
// exists, so exactly one of N racing failures applies it.
func (s *Postgres) ApplyLock(ctx context.Context, adminID id.AdminID, until time.Time, threshold int) (bool, error) {
	result, err := s.q(ctx).ExecContext(ctx, `
		UPDATE administrators
		SET locked_until = $2, updated_at = $2
		WHERE id = $1
		  AND consecutive_failed_logins >= $3
		  AND (locked_until IS NULL OR locked_until < $2)
	`, adminID.String(), until, threshold)
	if err != nil {
		return false, fmt.Errorf("apply account lock: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("apply account lock rows affected: %w", err)
	}
	return rows > 0, nil
}

func (s *Postgres) ClearFailures(ctx context.Context, adminID id.AdminID, now time.Time) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		UPDATE administrators
		SET consecutive_failed_logins = 0,
			failed_login_starttime = NULL,
			locked_until = NULL,
			updated_at = $2
		WHERE id = $1
	`, adminID.String(), now)
	if err != nil {
		return fmt.Errorf("clear login failures: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdministrator(row rowScanner) (*models.Administrator, error) {
	var a models.Administrator
	var adminID string
	var windowStart, lockedUntil sql.NullTime

	err := row.Scan(
		&adminID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.ConsecutiveFailedLogins,
		&windowStart,
		&lockedUntil,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := id.ParseAdminID(adminID)
	if err != nil {
		return nil, err
	}
	a.ID = parsed
	if windowStart.Valid {
		a.FailedLoginStarttime = &windowStart.Time
	}
	if lockedUntil.Valid {
		a.LockedUntil = &lockedUntil.Time
	}
	return &a, nil
}
