// Package handler exposes the application submission and review endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"govassist/internal/application/models"
	id "govassist/pkg/domain"
	dErrors "govassist/pkg/domain-errors"
	"govassist/pkg/platform/httputil"
	"govassist/pkg/platform/pagination"
	"govassist/pkg/requestcontext"
)

// Service defines the application operations the handler needs.
type Service interface {
	Create(ctx context.Context, applicantID id.ApplicantID, schemeID id.SchemeID) (*models.Application, error)
	Get(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error)
	List(ctx context.Context, sortBy, sortOrder string, page pagination.Params) ([]models.Application, int, error)
	Review(ctx context.Context, applicationID id.ApplicationID, status id.ApplicationStatus) (*models.Application, error)
}

// Handler serves /api/applications.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an application handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the application routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/applications", h.handleList)
	r.Post("/applications", h.handleCreate)
	r.Get("/applications/{id}", h.handleGet)
	r.Patch("/applications/{id}", h.handleReview)
}

type createRequest struct {
	ApplicantID string `json:"applicant_id"`
	SchemeID    string `json:"scheme_id"`

	applicantID id.ApplicantID
	schemeID    id.SchemeID
}

func (r *createRequest) Validate() error {
	applicantID, err := id.ParseApplicantID(r.ApplicantID)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "applicant_id must be a valid UUID")
	}
	schemeID, err := id.ParseSchemeID(r.SchemeID)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "scheme_id must be a valid UUID")
	}
	r.applicantID = applicantID
	r.schemeID = schemeID
	return nil
}

type reviewRequest struct {
	Status string `json:"status"`

	status id.ApplicationStatus
}

func (r *reviewRequest) Validate() error {
	status, err := id.ParseApplicationStatus(r.Status)
	if err != nil {
		return err
	}
	r.status = status
	return nil
}

type applicationResponse struct {
	ID                 string `json:"id"`
	ApplicantID        string `json:"applicant_id"`
	SchemeID           string `json:"scheme_id"`
	Status             string `json:"status"`
	EligibilityVerdict bool   `json:"eligibility_verdict"`
	EligibilityReason  string `json:"eligibility_reason"`
	AwardedBenefits    any    `json:"awarded_benefits"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

func toResponse(application *models.Application) applicationResponse {
	return applicationResponse{
		ID:                 application.ID.String(),
		ApplicantID:        application.ApplicantID.String(),
		SchemeID:           application.SchemeID.String(),
		Status:             application.Status.String(),
		EligibilityVerdict: application.EligibilityVerdict,
		EligibilityReason:  application.EligibilityReason,
		AwardedBenefits:    application.AwardedBenefits,
		CreatedAt:          application.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:          application.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := pagination.FromRequest(r)
	sortBy := r.URL.Query().Get("sort_by")
	sortOrder := r.URL.Query().Get("sort_order")

	applications, total, err := h.service.List(ctx, sortBy, sortOrder, page)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list applications",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	out := make([]applicationResponse, 0, len(applications))
	for i := range applications {
		out = append(out, toResponse(&applications[i]))
	}
	httputil.WriteJSON(w, http.StatusOK, pagination.NewEnvelope(out, page, total))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[createRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	application, err := h.service.Create(ctx, req.applicantID, req.schemeID)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "failed to create application",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(application))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	applicationID, err := id.ParseApplicationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid application id"))
		return
	}

	application, err := h.service.Get(ctx, applicationID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(application))
}

func (h *Handler) handleReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	applicationID, err := id.ParseApplicationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid application id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[reviewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	application, err := h.service.Review(ctx, applicationID, req.status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(application))
}
