package token

import (
	id "govassist/pkg/domain"
	dErrors "govassist/pkg/domain-errors"
	authmw "govassist/pkg/platform/middleware/auth"
)

// MiddlewareAdapter bridges the token service to the auth middleware's
// validator interface.
type MiddlewareAdapter struct {
	service *Service
}

// NewMiddlewareAdapter constructs the adapter.
func NewMiddlewareAdapter(service *Service) *MiddlewareAdapter {
	return &MiddlewareAdapter{service: service}
}

// ValidateToken implements authmw.JWTValidator.
func (a *MiddlewareAdapter) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	adminID, err := id.ParseAdminID(claims.AdminID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return &authmw.JWTClaims{
		AdminID:  adminID,
		Username: claims.Username,
		JTI:      claims.ID,
	}, nil
}
