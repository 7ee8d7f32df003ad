// Package models defines the administrator account aggregate.
package models

import (
	"time"

	id "govassist/pkg/domain"
)

// Administrator is a back-office account that can authenticate against the
// API. Lockout counters live on the row itself so a single atomic UPDATE can
// advance them under concurrent failed logins.
type Administrator struct {
	ID                      id.AdminID
	Username                string
	Email                   string
	PasswordHash            string
	ConsecutiveFailedLogins int
	// FailedLoginStarttime anchors the sliding failure window. Nil when the
	// account has no recent failures.
	FailedLoginStarttime *time.Time
	// LockedUntil is set when the account is hard-locked. Nil or past means
	// the account may attempt login.
	LockedUntil *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLocked reports whether the account is locked at the given instant.
func (a *Administrator) IsLocked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}
