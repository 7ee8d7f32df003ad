// Package handler exposes the configuration endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"govassist/internal/sysconfig"
	dErrors "govassist/pkg/domain-errors"
	"govassist/pkg/platform/httputil"
	"govassist/pkg/requestcontext"
)

// Service defines the configuration operations the handler needs.
type Service interface {
	List(ctx context.Context) ([]sysconfig.Setting, error)
	Set(ctx context.Context, key, value string) (*sysconfig.Setting, error)
}

// Handler serves /api/configurations.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a configuration handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the configuration routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/configurations", h.handleList)
	r.Put("/configurations/{key}", h.handleSet)
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type setRequest struct {
	Value string `json:"value"`
}

func (r *setRequest) Validate() error {
	if r.Value == "" {
		return dErrors.New(dErrors.CodeValidation, "value is required")
	}
	return nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list configurations",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	out := make([]settingResponse, 0, len(settings))
	for _, setting := range settings {
		out = append(out, settingResponse{Key: setting.Key, Value: setting.Value})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	key := chi.URLParam(r, "key")
	req, ok := httputil.DecodeAndPrepare[setRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	setting, err := h.service.Set(ctx, key, req.Value)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(ctx, "failed to update configuration",
				"request_id", requestID,
				"key", key,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, settingResponse{Key: setting.Key, Value: setting.Value})
}
