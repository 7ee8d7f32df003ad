package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govassist/internal/admin/device"
	"govassist/internal/admin/models"
	"govassist/internal/admin/secrets"
	"govassist/internal/admin/store"
	"govassist/internal/audit"
	"govassist/internal/platform/config"
	"govassist/internal/token"
	id "govassist/pkg/domain"
	dErrors "govassist/pkg/domain-errors"
	"govassist/pkg/requestcontext"
)

var loginTime = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

const (
	testUsername = "alice"
	testPassword = "correct horse battery staple"
)

type fakeRevoker struct {
	revoked map[string]time.Duration
}

func (f *fakeRevoker) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	if f.revoked == nil {
		f.revoked = make(map[string]time.Duration)
	}
	f.revoked[jti] = ttl
	return nil
}

type fixture struct {
	service *Service
	store   *store.Memory
	outbox  *audit.MemoryOutbox
	revoker *fakeRevoker
	admin   *models.Administrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:   store.NewMemory(),
		outbox:  audit.NewMemoryOutbox(),
		revoker: &fakeRevoker{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := token.NewService(config.JWTConfig{
		SigningKey: "test-signing-key",
		Issuer:     "test-issuer",
		Audience:   "test-audience",
		TTL:        time.Hour,
	})
	policy := config.LockoutConfig{
		MaxFailures:  5,
		Window:       15 * time.Minute,
		LockDuration: 15 * time.Minute,
	}
	f.service = New(
		f.store,
		tokens,
		f.revoker,
		device.NewService(true),
		audit.NewOutboxPublisher(f.outbox),
		policy,
		logger,
	)

	hash, err := secrets.Hash(testPassword)
	require.NoError(t, err)
	f.admin = &models.Administrator{
		ID:           id.NewAdminID(),
		Username:     testUsername,
		Email:        "alice@govassist.local",
		PasswordHash: hash,
		CreatedAt:    loginTime.AddDate(0, -1, 0),
		UpdatedAt:    loginTime.AddDate(0, -1, 0),
	}
	require.NoError(t, f.store.Create(context.Background(), f.admin))
	return f
}

func ctxAt(at time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), at)
}

func (f *fixture) failLogin(t *testing.T, at time.Time) {
	t.Helper()
	_, err := f.service.Login(ctxAt(at), testUsername, "wrong-password")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials"))
}

func (f *fixture) auditActions() []audit.Action {
	events := f.outbox.All()
	actions := make([]audit.Action, len(events))
	for i, event := range events {
		actions[i] = event.Action
	}
	return actions
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	ctx := requestcontext.WithClientMetadata(ctxAt(loginTime), "10.0.0.1",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0")

	result, err := f.service.Login(ctx, testUsername, testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, 3600, result.ExpiresIn)

	assert.Contains(t, f.auditActions(), audit.ActionLoginSucceeded)
}

func TestLogin_WrongPasswordAdvancesCounter(t *testing.T) {
	f := newFixture(t)

	f.failLogin(t, loginTime)
	f.failLogin(t, loginTime.Add(time.Minute))

	admin, err := f.store.GetByUsername(context.Background(), testUsername)
	require.NoError(t, err)
	assert.Equal(t, 2, admin.ConsecutiveFailedLogins)
	require.NotNil(t, admin.FailedLoginStarttime)
	assert.Equal(t, loginTime, *admin.FailedLoginStarttime)
	assert.Nil(t, admin.LockedUntil)
}

func TestLogin_FifthFailureLocksAccount(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 5; i++ {
		f.failLogin(t, loginTime.Add(time.Duration(i)*time.Minute))
	}

	admin, err := f.store.GetByUsername(context.Background(), testUsername)
	require.NoError(t, err)
	require.NotNil(t, admin.LockedUntil)
	assert.Equal(t, loginTime.Add(4*time.Minute).Add(15*time.Minute), *admin.LockedUntil)

	// Correct credentials are rejected while the lock holds.
	_, err = f.service.Login(ctxAt(loginTime.Add(5*time.Minute)), testUsername, testPassword)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeLocked))
	assert.Contains(t, dErrors.MessageOf(err), "try again in")

	assert.Contains(t, f.auditActions(), audit.ActionAccountLocked)
}

func TestLogin_LockExpiresThenSucceeds(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 5; i++ {
		f.failLogin(t, loginTime)
	}

	afterLock := loginTime.Add(16 * time.Minute)
	result, err := f.service.Login(ctxAt(afterLock), testUsername, testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)

	admin, err := f.store.GetByUsername(context.Background(), testUsername)
	require.NoError(t, err)
	assert.Zero(t, admin.ConsecutiveFailedLogins)
	assert.Nil(t, admin.FailedLoginStarttime)
	assert.Nil(t, admin.LockedUntil)
}

func TestLogin_WindowExpiryRestartsCounter(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 4; i++ {
		f.failLogin(t, loginTime)
	}

	// Past the window the next failure starts a fresh count of 1.
	later := loginTime.Add(16 * time.Minute)
	f.failLogin(t, later)

	admin, err := f.store.GetByUsername(context.Background(), testUsername)
	require.NoError(t, err)
	assert.Equal(t, 1, admin.ConsecutiveFailedLogins)
	require.NotNil(t, admin.FailedLoginStarttime)
	assert.Equal(t, later, *admin.FailedLoginStarttime)
	assert.Nil(t, admin.LockedUntil)
}

func TestLogin_SuccessClearsCounter(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		f.failLogin(t, loginTime)
	}

	_, err := f.service.Login(ctxAt(loginTime.Add(time.Minute)), testUsername, testPassword)
	require.NoError(t, err)

	// A later failure starts from one again.
	f.failLogin(t, loginTime.Add(2*time.Minute))
	admin, err := f.store.GetByUsername(context.Background(), testUsername)
	require.NoError(t, err)
	assert.Equal(t, 1, admin.ConsecutiveFailedLogins)
}

func TestLogin_UnknownUsername(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Login(ctxAt(loginTime), "nobody", "whatever")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials"))

	assert.Contains(t, f.auditActions(), audit.ActionLoginFailed)
}

func TestLogout_RevokesPresentedToken(t *testing.T) {
	f := newFixture(t)
	ctx := requestcontext.WithTokenID(ctxAt(loginTime), "jti-123")
	ctx = requestcontext.WithUsername(ctx, testUsername)

	require.NoError(t, f.service.Logout(ctx))
	assert.Equal(t, time.Hour, f.revoker.revoked["jti-123"])
	assert.Contains(t, f.auditActions(), audit.ActionTokenRevoked)
}

func TestLogout_WithoutToken(t *testing.T) {
	f := newFixture(t)

	err := f.service.Logout(ctxAt(loginTime))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestBootstrap_SeedsFirstAdministrator(t *testing.T) {
	f := newFixture(t)
	empty := store.NewMemory()
	f.service.store = empty

	cfg := config.BootstrapConfig{
		AdminUsername: "admin",
		AdminEmail:    "admin@govassist.local",
		AdminPassword: "bootstrap-password",
	}
	require.NoError(t, f.service.Bootstrap(context.Background(), cfg))

	admin, err := empty.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	require.NoError(t, secrets.Verify("bootstrap-password", admin.PasswordHash))

	// A second run is a no-op.
	require.NoError(t, f.service.Bootstrap(context.Background(), cfg))
	count, err := empty.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBootstrap_SkippedWithoutPassword(t *testing.T) {
	f := newFixture(t)
	empty := store.NewMemory()
	f.service.store = empty

	require.NoError(t, f.service.Bootstrap(context.Background(), config.BootstrapConfig{
		AdminUsername: "admin",
	}))
	count, err := empty.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
