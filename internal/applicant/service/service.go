// Package service implements applicant CRUD on top of the store port.
package service

import (
	"context"
	"errors"
	"log/slog"

	"govassist/internal/applicant/models"
	"govassist/internal/applicant/store"
	"govassist/internal/audit"
	id "govassist/pkg/domain"
	dErrors "govassist/pkg/domain-errors"
	"govassist/pkg/platform/pagination"
	"govassist/pkg/platform/sentinel"
	"govassist/pkg/requestcontext"
)

// Service owns applicant writes and translates store sentinels into coded
// domain errors.
type Service struct {
	store  store.Store
	audit  audit.Publisher
	logger *slog.Logger
}

// New constructs an applicant service.
func New(store store.Store, auditPublisher audit.Publisher, logger *slog.Logger) *Service {
	return &Service{store: store, audit: auditPublisher, logger: logger}
}

// Create persists a new applicant with its household members. IDs and
// timestamps are assigned here so callers pass pure field data.
func (s *Service) Create(ctx context.Context, applicant *models.Applicant) (*models.Applicant, error) {
	now := requestcontext.Now(ctx)
	applicant.ID = id.NewApplicantID()
	applicant.CreatedAt = now
	applicant.UpdatedAt = now
	for i := range applicant.HouseholdMembers {
		applicant.HouseholdMembers[i].ID = id.NewMemberID()
		applicant.HouseholdMembers[i].ApplicantID = applicant.ID
	}

	if err := s.store.Create(ctx, applicant); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create applicant")
	}

	s.emit(ctx, audit.ActionApplicantCreated, applicant.ID.String())
	s.logger.InfoContext(ctx, "applicant created",
		"request_id", requestcontext.RequestID(ctx),
		"applicant_id", applicant.ID,
		"household_size", len(applicant.HouseholdMembers),
	)
	return applicant, nil
}

// Get fetches one applicant with household members.
func (s *Service) Get(ctx context.Context, applicantID id.ApplicantID) (*models.Applicant, error) {
	applicant, err := s.store.Get(ctx, applicantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "applicant not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch applicant")
	}
	return applicant, nil
}

// Update replaces the applicant's fields and household member set.
func (s *Service) Update(ctx context.Context, applicant *models.Applicant) (*models.Applicant, error) {
	existing, err := s.Get(ctx, applicant.ID)
	if err != nil {
		return nil, err
	}

	applicant.CreatedAt = existing.CreatedAt
	applicant.UpdatedAt = requestcontext.Now(ctx)
	for i := range applicant.HouseholdMembers {
		applicant.HouseholdMembers[i].ID = id.NewMemberID()
		applicant.HouseholdMembers[i].ApplicantID = applicant.ID
	}

	if err := s.store.Update(ctx, applicant); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "applicant not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update applicant")
	}

	s.emit(ctx, audit.ActionApplicantUpdated, applicant.ID.String())
	return applicant, nil
}

// Delete removes the applicant and, via the schema cascade, its household.
func (s *Service) Delete(ctx context.Context, applicantID id.ApplicantID) error {
	if err := s.store.Delete(ctx, applicantID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "applicant not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete applicant")
	}
	s.emit(ctx, audit.ActionApplicantDeleted, applicantID.String())
	return nil
}

// List returns one page of applicants plus the unpaged total.
func (s *Service) List(ctx context.Context, page pagination.Params) ([]models.Applicant, int, error) {
	applicants, total, err := s.store.List(ctx, page)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applicants")
	}
	return applicants, total, nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, subject string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, audit.Event{
		Action:    action,
		Subject:   subject,
		Actor:     requestcontext.Username(ctx),
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: requestcontext.Now(ctx),
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", action,
			"error", err,
		)
	}
}
