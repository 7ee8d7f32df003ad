//go:build integration

package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"govassist/internal/admin/models"
	"govassist/internal/admin/store"
	id "govassist/pkg/domain"
	"govassist/pkg/platform/sentinel"
	"govassist/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "administrators")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) seedAdmin(username string) *models.Administrator {
	now := time.Now().UTC().Truncate(time.Microsecond)
	admin := &models.Administrator{
		ID:           id.NewAdminID(),
		Username:     username,
		Email:        username + "@govassist.local",
		PasswordHash: "$2a$10$placeholderplaceholderplaceholderplacehold",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Require().NoError(s.store.Create(context.Background(), admin))
	return admin
}

func (s *PostgresStoreSuite) TestGetByUsername() {
	admin := s.seedAdmin("alice")

	got, err := s.store.GetByUsername(context.Background(), "alice")
	s.Require().NoError(err)
	s.Equal(admin.ID, got.ID)
	s.Equal(admin.Email, got.Email)
	s.Zero(got.ConsecutiveFailedLogins)
	s.Nil(got.FailedLoginStarttime)
	s.Nil(got.LockedUntil)

	_, err = s.store.GetByUsername(context.Background(), "nobody")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestRecordFailureWindowSemantics() {
	ctx := context.Background()
	s.seedAdmin("alice")
	now := time.Now().UTC().Truncate(time.Microsecond)
	window := 15 * time.Minute

	// First failure opens the window at count 1.
	updated, err := s.store.RecordFailure(ctx, "alice", now.Add(-window), now)
	s.Require().NoError(err)
	s.Equal(1, updated.ConsecutiveFailedLogins)
	s.Require().NotNil(updated.FailedLoginStarttime)
	s.WithinDuration(now, *updated.FailedLoginStarttime, time.Millisecond)

	// A failure inside the window increments and keeps the anchor.
	later := now.Add(time.Minute)
	updated, err = s.store.RecordFailure(ctx, "alice", later.Add(-window), later)
	s.Require().NoError(err)
	s.Equal(2, updated.ConsecutiveFailedLogins)
	s.WithinDuration(now, *updated.FailedLoginStarttime, time.Millisecond)

	// A failure after the window expires restarts at 1 with a new anchor.
	expired := now.Add(window + time.Minute)
	updated, err = s.store.RecordFailure(ctx, "alice", expired.Add(-window), expired)
	s.Require().NoError(err)
	s.Equal(1, updated.ConsecutiveFailedLogins)
	s.WithinDuration(expired, *updated.FailedLoginStarttime, time.Millisecond)
}

// TestConcurrentFailuresCountExactly drives many parallel failures through
// the atomic UPDATE and verifies none are lost to races.
func (s *PostgresStoreSuite) TestConcurrentFailuresCountExactly() {
	ctx := context.Background()
	s.seedAdmin("alice")
	now := time.Now().UTC().Truncate(time.Microsecond)
	cutoff := now.Add(-15 * time.Minute)

	const goroutines = 20
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.RecordFailure(ctx, "alice", cutoff, now)
			s.NoError(err)
		}()
	}
	wg.Wait()

	admin, err := s.store.GetByUsername(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(goroutines, admin.ConsecutiveFailedLogins)
}

func (s *PostgresStoreSuite) TestApplyLockRequiresThreshold() {
	ctx := context.Background()
	admin := s.seedAdmin("alice")
	now := time.Now().UTC().Truncate(time.Microsecond)
	cutoff := now.Add(-15 * time.Minute)

	for i := 0; i < 3; i++ {
		_, err := s.store.RecordFailure(ctx, "alice", cutoff, now)
		s.Require().NoError(err)
	}

	applied, err := s.store.ApplyLock(ctx, admin.ID, now.Add(15*time.Minute), 5)
	s.Require().NoError(err)
	s.False(applied)

	for i := 0; i < 2; i++ {
		_, err := s.store.RecordFailure(ctx, "alice", cutoff, now)
		s.Require().NoError(err)
	}

	until := now.Add(15 * time.Minute)
	applied, err = s.store.ApplyLock(ctx, admin.ID, until, 5)
	s.Require().NoError(err)
	s.True(applied)

	// Re-applying the same lock is a no-op.
	applied, err = s.store.ApplyLock(ctx, admin.ID, until, 5)
	s.Require().NoError(err)
	s.False(applied)

	got, err := s.store.GetByUsername(ctx, "alice")
	s.Require().NoError(err)
	s.Require().NotNil(got.LockedUntil)
	s.WithinDuration(until, *got.LockedUntil, time.Millisecond)
}

func (s *PostgresStoreSuite) TestClearFailures() {
	ctx := context.Background()
	admin := s.seedAdmin("alice")
	now := time.Now().UTC().Truncate(time.Microsecond)

	for i := 0; i < 5; i++ {
		_, err := s.store.RecordFailure(ctx, "alice", now.Add(-15*time.Minute), now)
		s.Require().NoError(err)
	}
	applied, err := s.store.ApplyLock(ctx, admin.ID, now.Add(15*time.Minute), 5)
	s.Require().NoError(err)
	s.True(applied)

	s.Require().NoError(s.store.ClearFailures(ctx, admin.ID, now))

	got, err := s.store.GetByUsername(ctx, "alice")
	s.Require().NoError(err)
	s.Zero(got.ConsecutiveFailedLogins)
	s.Nil(got.FailedLoginStarttime)
	s.Nil(got.LockedUntil)
}

func (s *PostgresStoreSuite) TestDuplicateUsername() {
	s.seedAdmin("alice")
	err := s.store.Create(context.Background(), &models.Administrator{
		ID:           id.NewAdminID(),
		Username:     "alice",
		Email:        "other@govassist.local",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	})
	s.Require().Error(err)
}
