package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govassist/internal/admin/device"
	"govassist/internal/admin/service"
	"govassist/internal/admin/store"
	"govassist/internal/audit"
	"govassist/internal/platform/config"
	"govassist/internal/token"
	"govassist/pkg/testutil"
)

const (
	testUsername = "admin"
	testPassword = "s3cret-passw0rd"
)

type stubRevoker struct {
	revoked map[string]time.Duration
}

func (r *stubRevoker) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if r.revoked == nil {
		r.revoked = make(map[string]time.Duration)
	}
	r.revoked[jti] = ttl
	return nil
}

type authFixture struct {
	router  http.Handler
	revoker *stubRevoker
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := audit.NewOutboxPublisher(audit.NewMemoryOutbox())
	tokens := token.NewService(config.JWTConfig{
		SigningKey: "test-signing-key",
		Issuer:     "govassist-test",
		Audience:   "govassist-api",
		TTL:        time.Hour,
	})
	policy := config.LockoutConfig{
		MaxFailures:  5,
		Window:       15 * time.Minute,
		LockDuration: 15 * time.Minute,
	}

	f := &authFixture{revoker: &stubRevoker{}}
	svc := service.New(store.NewMemory(), tokens, f.revoker, device.NewService(true), publisher, policy, logger)
	require.NoError(t, svc.Bootstrap(context.Background(), config.BootstrapConfig{
		AdminUsername: testUsername,
		AdminEmail:    "admin@govassist.local",
		AdminPassword: testPassword,
	}))

	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	h.RegisterAuthenticated(r)
	f.router = r
	return f
}

func (f *authFixture) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	return testutil.Do(f.router, req)
}

func TestLoginIssuesToken(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.login(t, testUsername, testPassword)
	require.Equal(t, http.StatusOK, rec.Code)

	var result service.LoginResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, 3600, result.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.login(t, testUsername, "wrong")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	envelope := testutil.DecodeError(t, rec)
	assert.Equal(t, "unauthorized", envelope.Error)
	assert.Equal(t, "invalid credentials", envelope.ErrorDescription)
}

func TestLoginUnknownUsername(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.login(t, "nobody", testPassword)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown usernames and wrong passwords are indistinguishable on the wire.
	envelope := testutil.DecodeError(t, rec)
	assert.Equal(t, "unauthorized", envelope.Error)
	assert.Equal(t, "invalid credentials", envelope.ErrorDescription)
}

func TestLoginLockedAccount(t *testing.T) {
	f := newAuthFixture(t)

	for i := 0; i < 5; i++ {
		rec := f.login(t, testUsername, "wrong")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	// The correct password is refused while the lock holds.
	rec := f.login(t, testUsername, testPassword)
	require.Equal(t, http.StatusForbidden, rec.Code)

	envelope := testutil.DecodeError(t, rec)
	assert.Equal(t, "account_locked", envelope.Error)
	assert.Contains(t, envelope.ErrorDescription, "account locked, try again in")
}

func TestLoginValidation(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.login(t, "", testPassword)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := testutil.DecodeError(t, rec)
	assert.Equal(t, "validation_error", envelope.Error)
	assert.Equal(t, "username is required", envelope.ErrorDescription)

	rec = f.login(t, testUsername, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope = testutil.DecodeError(t, rec)
	assert.Equal(t, "validation_error", envelope.Error)
	assert.Equal(t, "password is required", envelope.ErrorDescription)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req = testutil.WithToken(req, "jti-123")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, time.Hour, f.revoker.revoked["jti-123"])
}

func TestLogoutWithoutToken(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope := testutil.DecodeError(t, rec)
	assert.Equal(t, "unauthorized", envelope.Error)
	assert.Equal(t, "no token to revoke", envelope.ErrorDescription)
}
