// Package service implements scheme catalog reads.
package service

import (
	"context"
	"errors"
	"log/slog"

	"govassist/internal/scheme/models"
	"govassist/internal/scheme/store"
	id "govassist/pkg/domain"
	dErrors "govassist/pkg/domain-errors"
	"govassist/pkg/platform/pagination"
	"govassist/pkg/platform/sentinel"
	"govassist/pkg/requestcontext"
)

// Service owns scheme catalog reads. Catalog writes happen through seeding
// and migrations; there is no authoring API.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// New constructs a scheme service.
func New(schemeStore store.Store, logger *slog.Logger) *Service {
	return &Service{store: schemeStore, logger: logger}
}

// Get fetches one scheme.
func (s *Service) Get(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error) {
	scheme, err := s.store.Get(ctx, schemeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "scheme not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch scheme")
	}
	return scheme, nil
}

// List returns one catalog page. onlyValid restricts to schemes whose
// validity window contains the request time.
func (s *Service) List(ctx context.Context, onlyValid bool, page pagination.Params) ([]models.Scheme, int, error) {
	var filter store.ListFilter
	if onlyValid {
		now := requestcontext.Now(ctx)
		filter.ValidAt = &now
	}

	schemes, total, err := s.store.List(ctx, filter, page)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list schemes")
	}
	return schemes, total, nil
}
