// Package store persists scheme applications.
package store

import (
	"context"

	"govassist/internal/application/models"
	id "govassist/pkg/domain"
	"govassist/pkg/platform/pagination"
)

// Sortable columns and orders. Unknown values fall back to the defaults at
// the service layer, so stores only ever see these.
const (
	SortByCreatedAt = "created_at"
	SortByStatus    = "status"
	SortOrderAsc    = "asc"
	SortOrderDesc   = "desc"
)

// ListOptions controls application listing.
type ListOptions struct {
	// Statuses filters to the given set; empty means all.
	Statuses  []id.ApplicationStatus
	SortBy    string
	SortOrder string
}

// Store is the persistence port for applications.
type Store interface {
	Create(ctx context.Context, application *models.Application) error
	Get(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error)
	List(ctx context.Context, opts ListOptions, page pagination.Params) ([]models.Application, int, error)
	// HasPending reports whether a pending application already exists for
	// the (applicant, scheme) pair.
	HasPending(ctx context.Context, applicantID id.ApplicantID, schemeID id.SchemeID) (bool, error)
	UpdateStatus(ctx context.Context, application *models.Application) error
}
