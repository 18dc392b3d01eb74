// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/strengthscope/backend/internal/catalog"
	"github.com/strengthscope/backend/internal/domain/attempt"
	"github.com/strengthscope/backend/internal/domain/response"
	"github.com/strengthscope/backend/internal/service"
	"github.com/strengthscope/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	assessments *service.AssessmentService
	catalogs    *catalog.Catalogs
	logger      *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(svc *service.AssessmentService, cats *catalog.Catalogs, logger *slog.Logger) *Handler {
	return &Handler{
		assessments: svc,
		catalogs:    cats,
		logger:      logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes {"error": msg} with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// handleServiceError maps lifecycle and store errors to HTTP responses.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}

	var vErr *response.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.As(err, &vErr):
		respondError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, attempt.ErrUnknownItem), errors.Is(err, attempt.ErrWrongScheme):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, attempt.ErrIncomplete), errors.Is(err, attempt.ErrCompleted):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, attempt.ErrExpired):
		respondError(w, http.StatusGone, err.Error())
	default:
		h.logger.Error("request failed", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
