//go:build integration

package revocation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"govassist/internal/token/revocation"
	"govassist/pkg/testutil/containers"
)

type PostgresTRLSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
}

func TestPostgresTRLSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresTRLSuite))
}

func (s *PostgresTRLSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
}

func (s *PostgresTRLSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "token_revocations")
	s.Require().NoError(err)
}

func (s *PostgresTRLSuite) TestRevokeAndCheck() {
	ctx := context.Background()
	trl := revocation.NewPostgresTRL(s.postgres.DB)

	revoked, err := trl.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(trl.RevokeToken(ctx, "jti-1", time.Hour))

	revoked, err = trl.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)
}

func (s *PostgresTRLSuite) TestExpiredEntryNotRevoked() {
	ctx := context.Background()

	// An injected clock moves time past the revocation's expiry without
	// waiting in real time.
	now := time.Now().UTC()
	clock := func() time.Time { return now }
	trl := revocation.NewPostgresTRL(s.postgres.DB, revocation.WithClock(func() time.Time { return clock() }))

	s.Require().NoError(trl.RevokeToken(ctx, "jti-1", time.Minute))

	revoked, err := trl.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)

	clock = func() time.Time { return now.Add(2 * time.Minute) }
	revoked, err = trl.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.False(revoked)
}

func (s *PostgresTRLSuite) TestRevokeBatch() {
	ctx := context.Background()
	trl := revocation.NewPostgresTRL(s.postgres.DB)

	s.Require().NoError(trl.RevokeBatch(ctx, []string{"a", "b", "", "c"}, time.Hour))

	for _, jti := range []string{"a", "b", "c"} {
		revoked, err := trl.IsRevoked(ctx, jti)
		s.Require().NoError(err)
		s.True(revoked, "jti %s should be revoked", jti)
	}

	revoked, err := trl.IsRevoked(ctx, "d")
	s.Require().NoError(err)
	s.False(revoked)
}
