// Package handler exposes the applicant CRUD endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"govassist/internal/applicant/models"
	id "govassist/pkg/domain"
	dErrors "govassist/pkg/domain-errors"
	"govassist/pkg/platform/httputil"
	"govassist/pkg/platform/pagination"
	"govassist/pkg/requestcontext"
)

// Service defines the applicant operations the handler needs.
type Service interface {
	Create(ctx context.Context, applicant *models.Applicant) (*models.Applicant, error)
	Get(ctx context.Context, applicantID id.ApplicantID) (*models.Applicant, error)
	Update(ctx context.Context, applicant *models.Applicant) (*models.Applicant, error)
	Delete(ctx context.Context, applicantID id.ApplicantID) error
	List(ctx context.Context, page pagination.Params) ([]models.Applicant, int, error)
}

// Handler serves /api/applicants.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an applicant handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the applicant routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/applicants", h.handleList)
	r.Post("/applicants", h.handleCreate)
	r.Get("/applicants/{id}", h.handleGet)
	r.Put("/applicants/{id}", h.handleUpdate)
	r.Delete("/applicants/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := pagination.FromRequest(r)

	applicants, total, err := h.service.List(ctx, page)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list applicants",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	out := make([]applicantResponse, 0, len(applicants))
	for i := range applicants {
		out = append(out, toResponse(&applicants[i]))
	}
	httputil.WriteJSON(w, http.StatusOK, pagination.NewEnvelope(out, page, total))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[applicantRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	applicant := req.parsed
	created, err := h.service.Create(ctx, &applicant)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create applicant",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	applicantID, err := id.ParseApplicantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid applicant id"))
		return
	}

	applicant, err := h.service.Get(ctx, applicantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(applicant))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	applicantID, err := id.ParseApplicantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid applicant id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[applicantRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	applicant := req.parsed
	applicant.ID = applicantID
	updated, err := h.service.Update(ctx, &applicant)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(updated))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	applicantID, err := id.ParseApplicantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid applicant id"))
		return
	}

	if err := h.service.Delete(ctx, applicantID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
