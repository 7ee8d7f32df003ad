// Package service implements administrator authentication with login lockout.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"govassist/internal/admin/device"
	"govassist/internal/admin/models"
	"govassist/internal/admin/secrets"
	"govassist/internal/admin/store"
	"govassist/internal/audit"
	"govassist/internal/platform/config"
	id "govassist/pkg/domain"
	dErrors "govassist/pkg/domain-errors"
	"govassist/pkg/platform/sentinel"
	"govassist/pkg/requestcontext"
)

// Tokens issues access tokens for authenticated administrators.
type Tokens interface {
	Generate(adminID id.AdminID, username string, now time.Time) (token, jti string, expiresAt time.Time, err error)
	TTL() time.Duration
}

// Revoker blacklists token JTIs until their natural expiry.
type Revoker interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
}

// Service handles administrator login, logout, and bootstrap seeding.
type Service struct {
	store   store.Store
	tokens  Tokens
	revoker Revoker
	devices *device.Service
	audit   audit.Publisher
	policy  config.LockoutConfig
	logger  *slog.Logger
}

// New constructs the administrator auth service.
func New(
	adminStore store.Store,
	tokens Tokens,
	revoker Revoker,
	devices *device.Service,
	auditPublisher audit.Publisher,
	policy config.LockoutConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:   adminStore,
		tokens:  tokens,
		revoker: revoker,
		devices: devices,
		audit:   auditPublisher,
		policy:  policy,
		logger:  logger,
	}
}

// LoginResult is the successful login payload.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// dummyHash keeps verification work constant-shape when the username does not
// exist, so response timing does not reveal which usernames are registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Login verifies credentials and issues an access token. Failed attempts
// advance the lockout counter; the threshold failure inside the window locks
// the account for the configured duration.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	now := requestcontext.Now(ctx)
	requestID := requestcontext.RequestID(ctx)

	admin, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			_ = secrets.Verify(password, dummyHash)
			audit.Log(ctx, s.logger, s.audit, audit.ActionLoginFailed, requestID,
				"subject", username,
				"reason", "unknown username",
			)
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, fmt.Errorf("login lookup: %w", err)
	}

	if admin.IsLocked(now) {
		retryAfter := int(admin.LockedUntil.Sub(now).Seconds())
		return nil, dErrors.Newf(dErrors.CodeLocked, "account locked, try again in %d seconds", retryAfter)
	}

	if err := secrets.Verify(password, admin.PasswordHash); err != nil {
		if !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			return nil, err
		}
		return nil, s.recordFailure(ctx, admin, now)
	}

	if err := s.store.ClearFailures(ctx, admin.ID, now); err != nil {
		return nil, fmt.Errorf("clear login failures: %w", err)
	}

	token, _, expiresAt, err := s.tokens.Generate(admin.ID, admin.Username, now)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	userAgent := requestcontext.UserAgent(ctx)
	audit.Log(ctx, s.logger, s.audit, audit.ActionLoginSucceeded, requestID,
		"subject", admin.ID.String(),
		"username", admin.Username,
		"device", device.ParseUserAgent(userAgent),
		"device_fingerprint", s.devices.ComputeFingerprint(userAgent),
	)

	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}, nil
}

// recordFailure advances the counter atomically and applies the lock when the
// threshold is reached. Always returns the invalid-credentials error so the
// caller cannot distinguish a counted failure from a locking one.
func (s *Service) recordFailure(ctx context.Context, admin *models.Administrator, now time.Time) error {
	requestID := requestcontext.RequestID(ctx)
	cutoff := now.Add(-s.policy.Window)

	updated, err := s.store.RecordFailure(ctx, admin.Username, cutoff, now)
	if err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}

	audit.Log(ctx, s.logger, s.audit, audit.ActionLoginFailed, requestID,
		"subject", admin.ID.String(),
		"username", admin.Username,
		"reason", "invalid credentials",
		"consecutive_failures", updated.ConsecutiveFailedLogins,
	)

	if updated.ConsecutiveFailedLogins >= s.policy.MaxFailures {
		applied, err := s.store.ApplyLock(ctx, admin.ID, now.Add(s.policy.LockDuration), s.policy.MaxFailures)
		if err != nil {
			return fmt.Errorf("apply account lock: %w", err)
		}
		if applied {
			audit.Log(ctx, s.logger, s.audit, audit.ActionAccountLocked, requestID,
				"subject", admin.ID.String(),
				"username", admin.Username,
				"reason", fmt.Sprintf("%d consecutive failed logins", updated.ConsecutiveFailedLogins),
			)
		}
	}

	return dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
}

// Logout revokes the token that authenticated this request. The revocation
// TTL is the full token lifetime, an upper bound on the remaining validity.
func (s *Service) Logout(ctx context.Context) error {
	jti := requestcontext.TokenID(ctx)
	if jti == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "no token to revoke")
	}

	if err := s.revoker.RevokeToken(ctx, jti, s.tokens.TTL()); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	audit.Log(ctx, s.logger, s.audit, audit.ActionTokenRevoked, requestcontext.RequestID(ctx),
		"subject", requestcontext.Username(ctx),
		"jti", jti,
	)
	return nil
}

// Bootstrap seeds the first administrator account when the table is empty.
// Seeding is skipped unless a bootstrap password is configured.
func (s *Service) Bootstrap(ctx context.Context, cfg config.BootstrapConfig) error {
	if cfg.AdminPassword == "" {
		s.logger.InfoContext(ctx, "bootstrap admin seeding skipped, no password configured")
		return nil
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count administrators: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := secrets.Hash(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	now := time.Now()
	admin := &models.Administrator{
		ID:           id.NewAdminID(),
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, admin); err != nil {
		return fmt.Errorf("create bootstrap administrator: %w", err)
	}

	s.logger.InfoContext(ctx, "bootstrap administrator created",
		"admin_id", admin.ID.String(),
		"username", admin.Username,
	)
	return nil
}
