// Package store persists administrator accounts and their lockout counters.
package store

import (
	"context"
	"time"

	"govassist/internal/admin/models"
	id "govassist/pkg/domain"
)

// Store is the administrator persistence port. Lockout counter updates are
// single atomic statements so concurrent failed logins cannot skip the lock
// threshold.
type Store interface {
	Create(ctx context.Context, admin *models.Administrator) error
	GetByUsername(ctx context.Context, username string) (*models.Administrator, error)
	Count(ctx context.Context) (int, error)

	// RecordFailure advances the failure counter: failures whose window
	// anchor predates cutoff start a fresh window at count 1, others
	// increment. Returns the updated record.
	RecordFailure(ctx context.Context, username string, cutoff, now time.Time) (*models.Administrator, error)

	// ApplyLock sets locked_until if the account has reached threshold
	// failures and is not already locked. Reports whether the lock was
	// applied by this call.
	ApplyLock(ctx context.Context, adminID id.AdminID, until time.Time, threshold int) (bool, error)

	// ClearFailures resets the counter, window anchor, and lock after a
	// successful login.
	ClearFailures(ctx context.Context, adminID id.AdminID, now time.Time) error
}
