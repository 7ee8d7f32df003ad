// Package handler exposes the scheme catalog and eligibility fan-out
// endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	applicantModels "govassist/internal/applicant/models"
	"govassist/internal/eligibility"
	"govassist/internal/scheme/models"
	schemeStore "govassist/internal/scheme/store"
	id "govassist/pkg/domain"
	dErrors "govassist/pkg/domain-errors"
	"govassist/pkg/platform/httputil"
	"govassist/pkg/platform/pagination"
	"govassist/pkg/requestcontext"
)

// CatalogService defines the scheme reads the handler needs.
type CatalogService interface {
	List(ctx context.Context, onlyValid bool, page pagination.Params) ([]models.Scheme, int, error)
}

// ApplicantService resolves the applicant for the eligibility fan-out.
type ApplicantService interface {
	Get(ctx context.Context, applicantID id.ApplicantID) (*applicantModels.Applicant, error)
}

// Manager runs the catalog-wide eligibility evaluation.
type Manager interface {
	CheckSchemesEligibility(ctx context.Context, filter schemeStore.ListFilter, validOnly bool, applicant *applicantModels.Applicant) ([]eligibility.Result, error)
}

// Handler serves /api/schemes.
type Handler struct {
	catalog    CatalogService
	applicants ApplicantService
	manager    Manager
	logger     *slog.Logger
}

// New constructs a scheme handler.
func New(catalog CatalogService, applicants ApplicantService, manager Manager, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalog, applicants: applicants, manager: manager, logger: logger}
}

// Register mounts the scheme routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/schemes", h.handleList)
	r.Get("/schemes/eligible", h.handleEligible)
}

type schemeResponse struct {
	ID                string          `json:"id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Criteria          models.Document `json:"criteria"`
	Benefits          models.Document `json:"benefits"`
	ValidityStartDate string          `json:"validity_start_date"`
	ValidityEndDate   *string         `json:"validity_end_date"`
}

func toResponse(scheme *models.Scheme) schemeResponse {
	out := schemeResponse{
		ID:                scheme.ID.String(),
		Code:              scheme.Code,
		Name:              scheme.Name,
		Description:       scheme.Description,
		Criteria:          scheme.Criteria,
		Benefits:          scheme.Benefits,
		ValidityStartDate: scheme.ValidityStartDate.Format("2006-01-02"),
	}
	if scheme.ValidityEndDate != nil {
		formatted := scheme.ValidityEndDate.Format("2006-01-02")
		out.ValidityEndDate = &formatted
	}
	return out
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := pagination.FromRequest(r)
	onlyValid := r.URL.Query().Get("fetch_valid_schemes") == "true"

	schemes, total, err := h.catalog.List(ctx, onlyValid, page)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list schemes",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	out := make([]schemeResponse, 0, len(schemes))
	for i := range schemes {
		out = append(out, toResponse(&schemes[i]))
	}
	httputil.WriteJSON(w, http.StatusOK, pagination.NewEnvelope(out, page, total))
}

func (h *Handler) handleEligible(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	raw := r.URL.Query().Get("applicant")
	if raw == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "applicant query parameter is required"))
		return
	}
	applicantID, err := id.ParseApplicantID(raw)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid applicant id"))
		return
	}

	applicant, err := h.applicants.Get(ctx, applicantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	results, err := h.manager.CheckSchemesEligibility(ctx, schemeStore.ListFilter{}, true, applicant)
	if err != nil {
		h.logger.ErrorContext(ctx, "eligibility fan-out failed",
			"request_id", requestID,
			"applicant_id", applicantID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	// The route surfaces only the schemes the applicant qualifies for.
	eligible := make([]eligibility.Result, 0, len(results))
	for _, result := range results {
		if result.IsEligible {
			eligible = append(eligible, result)
		}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"data": eligible})
}
