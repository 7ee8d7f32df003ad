// Package store persists the scheme catalog.
package store

import (
	"context"
	"time"

	"govassist/internal/scheme/models"
	id "govassist/pkg/domain"
	"govassist/pkg/platform/pagination"
)

// ListFilter restricts scheme listings. A nil ValidAt returns the full
// catalog; a set ValidAt returns only schemes whose window contains it.
type ListFilter struct {
	ValidAt *time.Time
}

// Store is the persistence port for schemes.
type Store interface {
	Get(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error)
	// ListAll returns every scheme matching the filter in catalog order
	// (validity start, then name). Used by the eligibility manager.
	ListAll(ctx context.Context, filter ListFilter) ([]models.Scheme, error)
	// List returns one page of schemes plus the unpaged total.
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Scheme, int, error)
	Create(ctx context.Context, scheme *models.Scheme) error
	CountByCode(ctx context.Context, code string) (int, error)
}
