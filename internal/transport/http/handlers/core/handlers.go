package corehandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/audit"
	"timeclock/internal/domain/core"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

type Handler struct {
	Service        *core.Service
	Audit          audit.Recorder
	UploadDir      string
	MaxUploadBytes int64
}

func NewHandler(service *core.Service, recorder audit.Recorder, uploadDir string, maxUploadBytes int64) *Handler {
	return &Handler{Service: service, Audit: recorder, UploadDir: uploadDir, MaxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGetEmployee)
			r.Put("/", h.handleUpdateEmployee)
			r.Delete("/", h.handleDeleteEmployee)
			r.Get("/credential.pdf", h.handleCredential)
			r.Get("/barcode.png", h.handleBarcode)
		})
	})
	r.Get("/departments", h.handleListDepartments)
	r.Route("/schedules", func(r chi.Router) {
		r.Get("/", h.handleListSchedules)
		r.Post("/", h.handleCreateSchedule)
		r.Route("/{scheduleID}", func(r chi.Router) {
			r.Get("/", h.handleGetSchedule)
			r.Put("/", h.handleUpdateSchedule)
			r.Delete("/", h.handleDeleteSchedule)
		})
	})
}

// writeError maps directory errors onto HTTP responses.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallbackCode, fallbackMessage string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, core.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	case errors.Is(err, core.ErrScheduleNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "schedule not found", requestID)
	case errors.Is(err, core.ErrDuplicate):
		api.Fail(w, http.StatusConflict, "employee_exists", err.Error(), requestID)
	case errors.Is(err, core.ErrValidation), errors.Is(err, core.ErrInvalidClock), errors.Is(err, core.ErrInvalidWindow):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	default:
		slog.Error(fallbackMessage, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, fallbackCode, fallbackMessage, requestID)
	}
}

func (h *Handler) record(r *http.Request, action, entityType, entityID string, before, after any) {
	if h.Audit == nil {
		return
	}
	if err := h.Audit.Record(r.Context(), action, entityType, entityID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, after); err != nil {
		slog.Warn("audit record failed", "action", action, "entityType", entityType, "entityId", entityID, "err", err)
	}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
