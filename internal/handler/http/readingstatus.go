package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amer1301/bokrecension/internal/domain"
	"github.com/amer1301/bokrecension/internal/service"
	"github.com/amer1301/bokrecension/pkg/httputil"
	"github.com/amer1301/bokrecension/pkg/middleware"
	"github.com/amer1301/bokrecension/pkg/validator"
)

// ReadingStatusHandler handles reading status endpoints.
type ReadingStatusHandler struct {
	service *service.ReadingStatusService
	logger  *slog.Logger
}

// NewReadingStatusHandler creates a new reading status HTTP handler.
func NewReadingStatusHandler(svc *service.ReadingStatusService, logger *slog.Logger) *ReadingStatusHandler {
	return &ReadingStatusHandler{service: svc, logger: logger}
}

// Set handles PUT /api/v1/reading-status
func (h *ReadingStatusHandler) Set(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	userID := middleware.UserIDFromContext(r.Context())

	var input domain.SetReadingStatusInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	status, err := h.service.Set(r.Context(), userID, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: status})
}

// Get handles GET /api/v1/reading-status/{bookId}
func (h *ReadingStatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")
	userID := middleware.UserIDFromContext(r.Context())

	status, err := h.service.Get(r.Context(), bookID, userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: status})
}

// List handles GET /api/v1/reading-status
func (h *ReadingStatusHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	statuses, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: statuses})
}

// Delete handles DELETE /api/v1/reading-status/{bookId}
func (h *ReadingStatusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")
	userID := middleware.UserIDFromContext(r.Context())

	if err := h.service.Delete(r.Context(), bookID, userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
