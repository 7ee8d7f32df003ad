package store

import (
	"context"
	"sync"
	"time"

	"govassist/internal/admin/models"
	id "govassist/pkg/domain"
	"govassist/pkg/platform/sentinel"
)

// Memory is an in-memory administrator store for tests.
type Memory struct {
	mu         sync.RWMutex
	byUsername map[string]*models.Administrator
}

// NewMemory constructs an empty in-memory administrator store.
func NewMemory() *Memory {
	return &Memory{byUsername: make(map[string]*models.Administrator)}
}

func (s *Memory) Create(_ context.Context, admin *models.Administrator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[admin.Username]; exists {
		return sentinel.ErrConflict
	}
	s.byUsername[admin.Username] = clone(admin)
	return nil
}

func (s *Memory) GetByUsername(_ context.Context, username string) (*models.Administrator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	admin, ok := s.byUsername[username]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(admin), nil
}

func (s *Memory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUsername), nil
}

func (s *Memory) RecordFailure(_ context.Context, username string, cutoff, now time.Time) (*models.Administrator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin, ok := s.byUsername[username]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if admin.FailedLoginStarttime == nil || admin.FailedLoginStarttime.Before(cutoff) {
		admin.ConsecutiveFailedLogins = 1
		start := now
		admin.FailedLoginStarttime = &start
	} else {
		admin.ConsecutiveFailedLogins++
	}
	admin.UpdatedAt = now
	return clone(admin), nil
}

func (s *Memory) ApplyLock(_ context.Context, adminID id.AdminID, until time.Time, threshold int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, admin := range s.byUsername {
		if admin.ID != adminID {
			continue
		}
		if admin.ConsecutiveFailedLogins < threshold {
			return false, nil
		}
		if admin.LockedUntil != nil && !admin.LockedUntil.Before(until) {
			return false, nil
		}
		lock := until
		admin.LockedUntil = &lock
		admin.UpdatedAt = until
		return true, nil
	}
	return false, nil
}

func (s *Memory) ClearFailures(_ context.Context, adminID id.AdminID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, admin := range s.byUsername {
		if admin.ID != adminID {
			continue
		}
		admin.ConsecutiveFailedLogins = 0
		admin.FailedLoginStarttime = nil
		admin.LockedUntil = nil
		admin.UpdatedAt = now
		return nil
	}
	return nil
}

func clone(admin *models.Administrator) *models.Administrator {
	out := *admin
	if admin.FailedLoginStarttime != nil {
		t := *admin.FailedLoginStarttime
		out.FailedLoginStarttime = &t
	}
	if admin.LockedUntil != nil {
		t := *admin.LockedUntil
		out.LockedUntil = &t
	}
	return &out
}
