// Package store persists applicants and their household members.
package store

import (
	"context"

	"govassist/internal/applicant/models"
	id "govassist/pkg/domain"
	"govassist/pkg/platform/pagination"
)

// Store is the persistence port for applicants. Implementations return
// pkg/platform/sentinel errors for infrastructure facts (not found, conflict);
// the service layer translates them into coded domain errors.
type Store interface {
	Create(ctx context.Context, applicant *models.Applicant) error
	Get(ctx context.Context, applicantID id.ApplicantID) (*models.Applicant, error)
	// Update replaces the applicant row and its entire household member set.
	Update(ctx context.Context, applicant *models.Applicant) error
	Delete(ctx context.Context, applicantID id.ApplicantID) error
	List(ctx context.Context, page pagination.Params) ([]models.Applicant, int, error)
}
