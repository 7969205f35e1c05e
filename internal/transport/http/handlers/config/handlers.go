package confighandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/audit"
	"timeclock/internal/domain/settings"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

type Handler struct {
	Service *settings.Service
	Audit   audit.Recorder
}

func NewHandler(service *settings.Service, recorder audit.Recorder) *Handler {
	return &Handler{Service: service, Audit: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/config", func(r chi.Router) {
		r.Get("/", h.handleAll)
		r.Post("/", h.handleSet)
		r.Get("/{key}", h.handleGet)
	})
}

type setRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.Service.All(r.Context())
	if err != nil {
		requestID := middleware.GetRequestID(r.Context())
		slog.Error("settings load failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "config_failed", "Failed to fetch configuration", requestID)
		return
	}
	api.Success(w, all)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	entry, err := h.Service.Get(r.Context(), chi.URLParam(r, "key"))
	switch {
	case errors.Is(err, settings.ErrUnknownKey), errors.Is(err, settings.ErrNotSet):
		api.Fail(w, http.StatusNotFound, "not_found", "Configuration not found", requestID)
	case err != nil:
		slog.Error("setting load failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "config_failed", "Failed to get configuration", requestID)
	default:
		api.Success(w, entry)
	}
}

func (h *Handler) handleSet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload setRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	v := shared.NewValidator()
	v.Required("key", payload.Key, "is required")
	if len(bytes.TrimSpace(payload.Value)) == 0 {
		v.Add("value", "is required")
	}
	if v.Reject(w, requestID) {
		return
	}

	var before any
	if prev, err := h.Service.Get(r.Context(), payload.Key); err == nil {
		before = prev
	}

	entry, err := h.Service.Set(r.Context(), payload.Key, payload.Value)
	switch {
	case errors.Is(err, settings.ErrUnknownKey):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "key", Reason: err.Error()}})
		return
	case errors.Is(err, settings.ErrInvalidValue):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "value", Reason: err.Error()}})
		return
	case err != nil:
		slog.Error("setting save failed", "key", payload.Key, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "config_failed", "Failed to save configuration", requestID)
		return
	}

	if h.Audit != nil {
		if err := h.Audit.Record(r.Context(), audit.ActionUpdate, audit.EntitySetting, entry.Key, requestID, shared.ClientIP(r), before, entry); err != nil {
			slog.Warn("audit record failed", "action", audit.ActionUpdate, "entityType", audit.EntitySetting, "entityId", entry.Key, "err", err)
		}
	}
	api.Success(w, entry)
}
