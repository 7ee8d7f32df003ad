// Package service implements application submission and review. Submission
// runs the eligibility evaluation and freezes its outcome into the stored row.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	json "github.com/goccy/go-json"

	applicantModels "govassist/internal/applicant/models"
	"govassist/internal/application/models"
	"govassist/internal/application/store"
	"govassist/internal/audit"
	"govassist/internal/eligibility"
	schemeModels "govassist/internal/scheme/models"
	id "govassist/pkg/domain"
	dErrors "govassist/pkg/domain-errors"
	"govassist/pkg/platform/pagination"
	"govassist/pkg/platform/sentinel"
	"govassist/pkg/platform/tx"
	"govassist/pkg/requestcontext"
)

// ApplicantStore is the slice of the applicant store the service reads.
type ApplicantStore interface {
	Get(ctx context.Context, applicantID id.ApplicantID) (*applicantModels.Applicant, error)
}

// SchemeStore is the slice of the scheme store the service reads.
type SchemeStore interface {
	Get(ctx context.Context, schemeID id.SchemeID) (*schemeModels.Scheme, error)
}

// Evaluator runs a single-scheme eligibility evaluation.
type Evaluator interface {
	CheckEligibility(ctx context.Context, scheme *schemeModels.Scheme, applicant *applicantModels.Applicant) (*eligibility.Result, error)
}

// Service owns the application lifecycle.
type Service struct {
	store      store.Store
	applicants ApplicantStore
	schemes    SchemeStore
	evaluator  Evaluator
	db         *sql.DB
	audit      audit.Publisher
	logger     *slog.Logger
}

// New constructs an application service. db may be nil when the store is
// in-memory; writes then skip the transaction wrapper.
func New(
	applicationStore store.Store,
	applicants ApplicantStore,
	schemes SchemeStore,
	evaluator Evaluator,
	db *sql.DB,
	auditPublisher audit.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:      applicationStore,
		applicants: applicants,
		schemes:    schemes,
		evaluator:  evaluator,
		db:         db,
		audit:      auditPublisher,
		logger:     logger,
	}
}

// Create submits an application: load both sides, reject a duplicate pending
// pair, evaluate, and persist the verdict with its award snapshot. The row
// and the audit event commit atomically.
func (s *Service) Create(ctx context.Context, applicantID id.ApplicantID, schemeID id.SchemeID) (*models.Application, error) {
	applicant, err := s.applicants.Get(ctx, applicantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "applicant not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch applicant")
	}

	scheme, err := s.schemes.Get(ctx, schemeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "scheme not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch scheme")
	}

	pending, err := s.store.HasPending(ctx, applicantID, schemeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing applications")
	}
	if pending {
		return nil, dErrors.New(dErrors.CodeConflict, "a pending application already exists for this applicant and scheme")
	}

	result, err := s.evaluator.CheckEligibility(ctx, scheme, applicant)
	if err != nil {
		return nil, err
	}

	snapshot, err := snapshotAwards(result.EligibleBenefits)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to snapshot benefit awards")
	}

	now := requestcontext.Now(ctx)
	application := &models.Application{
		ID:                 id.NewApplicationID(),
		ApplicantID:        applicantID,
		SchemeID:           schemeID,
		Status:             id.ApplicationPending,
		EligibilityVerdict: result.IsEligible,
		EligibilityReason:  result.Reason,
		AwardedBenefits:    snapshot,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = s.inTx(ctx, func(txCtx context.Context) error {
		if err := s.store.Create(txCtx, application); err != nil {
			return err
		}
		return s.emit(txCtx, audit.ActionApplicationSubmitted, application.ID.String(), result)
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create application")
	}

	s.logger.InfoContext(ctx, "application submitted",
		"request_id", requestcontext.RequestID(ctx),
		"application_id", application.ID,
		"scheme_code", scheme.Code,
		"eligible", result.IsEligible,
	)
	return application, nil
}

// Get fetches one application.
func (s *Service) Get(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error) {
	application, err := s.store.Get(ctx, applicationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch application")
	}
	return application, nil
}

// List returns one page of applications. Unknown sort columns and orders
// fall back to the defaults instead of erroring.
func (s *Service) List(ctx context.Context, sortBy, sortOrder string, page pagination.Params) ([]models.Application, int, error) {
	opts := store.ListOptions{
		SortBy:    store.SortByCreatedAt,
		SortOrder: store.SortOrderDesc,
	}
	if sortBy == store.SortByStatus {
		opts.SortBy = store.SortByStatus
	}
	if sortOrder == store.SortOrderAsc {
		opts.SortOrder = store.SortOrderAsc
	}

	applications, total, err := s.store.List(ctx, opts, page)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}
	return applications, total, nil
}

// Review moves a pending application to approved or rejected.
func (s *Service) Review(ctx context.Context, applicationID id.ApplicationID, status id.ApplicationStatus) (*models.Application, error) {
	if status != id.ApplicationApproved && status != id.ApplicationRejected {
		return nil, dErrors.New(dErrors.CodeValidation, "status must be approved or rejected")
	}

	application, err := s.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.Status != id.ApplicationPending {
		return nil, dErrors.Newf(dErrors.CodeConflict, "application is already %s", application.Status)
	}

	application.Status = status
	application.UpdatedAt = requestcontext.Now(ctx)

	err = s.inTx(ctx, func(txCtx context.Context) error {
		if err := s.store.UpdateStatus(txCtx, application); err != nil {
			return err
		}
		return s.audit.Emit(txCtx, audit.Event{
			Action:    audit.ActionApplicationReviewed,
			Subject:   application.ID.String(),
			Actor:     requestcontext.Username(ctx),
			Decision:  status.String(),
			RequestID: requestcontext.RequestID(ctx),
			Timestamp: requestcontext.Now(ctx),
		})
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to review application")
	}

	s.logger.InfoContext(ctx, "application reviewed",
		"request_id", requestcontext.RequestID(ctx),
		"application_id", application.ID,
		"status", status,
	)
	return application, nil
}

// inTx runs fn inside a SQL transaction carried on the context. Without a
// database handle it runs fn directly.
func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx.WithTx(ctx, sqlTx)); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	return sqlTx.Commit()
}

func (s *Service) emit(ctx context.Context, action audit.Action, subject string, result *eligibility.Result) error {
	if s.audit == nil {
		return nil
	}
	decision := "ineligible"
	if result.IsEligible {
		decision = "eligible"
	}
	return s.audit.Emit(ctx, audit.Event{
		Action:    action,
		Subject:   subject,
		Actor:     requestcontext.Username(ctx),
		Decision:  decision,
		Reason:    result.Reason,
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: requestcontext.Now(ctx),
	})
}

// snapshotAwards marshals the awards into the stored JSON snapshot. An empty
// award list becomes an empty array, never null.
func snapshotAwards(awards []eligibility.BenefitAward) ([]byte, error) {
	if len(awards) == 0 {
		return []byte(`[]`), nil
	}
	return json.Marshal(awards)
}
