package testutil

import (
	"context"
	"net/http"

	id "govassist/pkg/domain"
	"govassist/pkg/requestcontext"
)

// WithAdmin injects an authenticated administrator into the request context,
// simulating what the auth middleware does for a valid token. An invalid
// admin ID is silently ignored.
func WithAdmin(req *http.Request, adminID, username string) *http.Request {
	ctx := req.Context()
	if parsed, err := id.ParseAdminID(adminID); err == nil {
		ctx = requestcontext.WithAdminID(ctx, parsed)
	}
	if username != "" {
		ctx = requestcontext.WithUsername(ctx, username)
	}
	return req.WithContext(ctx)
}

// WithToken injects a token JTI into the request context, as the auth
// middleware does after validating a bearer token.
func WithToken(req *http.Request, jti string) *http.Request {
	return req.WithContext(requestcontext.WithTokenID(req.Context(), jti))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
