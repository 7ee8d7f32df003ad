package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "govassist/pkg/domain"
	"govassist/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// TokenRevocationChecker defines the interface for checking if tokens are revoked.
type TokenRevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	AdminID  id.AdminID
	Username string
	JTI      string // JWT ID for revocation tracking
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireAuth guards a subtree behind bearer-token authentication. Valid
// tokens put the admin identity and token JTI into the request context; the
// revocation checker rejects tokens invalidated by logout before expiry.
func RequireAuth(validator JWTValidator, revocationChecker TokenRevocationChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			if after, ok := strings.CutPrefix(authHeader, bearerPrefix); ok {
				token := after
				claims, err := validator.ValidateToken(token)
				if err != nil {
					ctx := r.Context()
					requestID := requestcontext.RequestID(ctx)
					logger.WarnContext(ctx, "unauthorized access - invalid token",
						"error", err,
						"request_id", requestID,
					)
					writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
					return
				}

				ctx := r.Context()

				if revocationChecker != nil {
					if claims.JTI == "" {
						requestID := requestcontext.RequestID(ctx)
						logger.WarnContext(ctx, "unauthorized access - missing token jti",
							"request_id", requestID,
						)
						writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
						return
					}

					revoked, err := revocationChecker.IsRevoked(ctx, claims.JTI)
					if err != nil {
						requestID := requestcontext.RequestID(ctx)
						logger.ErrorContext(ctx, "failed to check token revocation",
							"error", err,
							"request_id", requestID,
						)
						writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to validate token")
						return
					}
					if revoked {
						requestID := requestcontext.RequestID(ctx)
						logger.WarnContext(ctx, "unauthorized access - token revoked",
							"jti", claims.JTI,
							"request_id", requestID,
						)
						writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Token has been revoked")
						return
					}
				}

				ctx = requestcontext.WithAdminID(ctx, claims.AdminID)
				ctx = requestcontext.WithUsername(ctx, claims.Username)
				ctx = requestcontext.WithTokenID(ctx, claims.JTI)

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// No Authorization header or invalid format
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)
			logger.WarnContext(ctx, "unauthorized access - missing token",
				"request_id", requestID,
			)
			writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
		})
	}
}
