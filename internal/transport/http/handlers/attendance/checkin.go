package attendancehandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/domain/core"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
)

type checkInRequest struct {
	EmployeeID string `json:"employeeId"`
}

type checkInResponse struct {
	Attendance  attendance.Event     `json:"attendance"`
	Employee    core.Employee        `json:"employee"`
	Type        attendance.EventType `json:"type"`
	HoursWorked string               `json:"hoursWorked"`
	Message     string               `json:"message"`
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	h.checkIn(w, r, attendance.SourceScanner)
}

func (h *Handler) handleManualEntry(w http.ResponseWriter, r *http.Request) {
	h.checkIn(w, r, attendance.SourceManual)
}

func (h *Handler) checkIn(w http.ResponseWriter, r *http.Request, source attendance.Source) {
	requestID := middleware.GetRequestID(r.Context())

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
			return
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request body", requestID)
		return
	}
	var payload checkInRequest
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", requestID)
			return
		}
	}

	idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	endpoint := idempotencyEndpoint + ":" + string(source)
	hash := middleware.RequestHash(raw)
	if idemKey != "" && h.Idem != nil {
		stored, err := h.Idem.Check(r.Context(), endpoint, idemKey, hash)
		if errors.Is(err, middleware.ErrIdempotencyConflict) {
			api.Fail(w, http.StatusConflict, "idempotency_conflict", err.Error(), requestID)
			return
		}
		if err != nil {
			slog.Warn("idempotency check failed", "err", err, "requestId", requestID)
		}
		if stored != nil {
			w.Header().Set("Idempotent-Replay", "true")
			api.WriteJSON(w, stored.Status, stored.Body)
			return
		}
	}

	result, err := h.Service.CheckIn(r.Context(), payload.EmployeeID, h.now(), source)
	if err != nil {
		h.writeCheckInError(w, r, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.CheckIn()
	}

	body, err := json.Marshal(checkInResponse{
		Attendance:  result.Event,
		Employee:    result.Employee,
		Type:        result.Event.Type,
		HoursWorked: result.HoursWorked,
		Message:     attendance.Message(result.Label),
	})
	if err != nil {
		slog.Error("check-in response encode failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "checkin_failed", "Failed to process check-in/out", requestID)
		return
	}
	if idemKey != "" && h.Idem != nil {
		if err := h.Idem.Save(r.Context(), endpoint, idemKey, hash, middleware.StoredResponse{Status: http.StatusCreated, Body: body}); err != nil {
			slog.Warn("idempotency save failed", "err", err, "requestId", requestID)
		}
	}
	api.WriteJSON(w, http.StatusCreated, json.RawMessage(body))
}

func (h *Handler) writeCheckInError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	var cooldown *attendance.CooldownError
	switch {
	case errors.As(err, &cooldown):
		if h.Metrics != nil {
			h.Metrics.CooldownRejected()
		}
		w.Header().Set("Retry-After", strconv.Itoa(cooldown.Remaining))
		api.FailWithDetails(w, http.StatusBadRequest, "cooldown", attendance.CooldownMessage(cooldown.Remaining),
			map[string]int{"remainingSeconds": cooldown.Remaining}, requestID)
	case errors.Is(err, attendance.ErrDayComplete):
		if h.Metrics != nil {
			h.Metrics.DayCompleteRejected()
		}
		api.Fail(w, http.StatusBadRequest, "day_complete", attendance.DayCompleteMessage, requestID)
	case errors.Is(err, attendance.ErrEmployeeIDRequired):
		api.Fail(w, http.StatusBadRequest, "validation_error", "Employee ID is required", requestID)
	case errors.Is(err, attendance.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "Employee not found", requestID)
	case errors.Is(err, attendance.ErrStaleDay):
		api.Fail(w, http.StatusConflict, "conflict", "attendance changed concurrently, scan again", requestID)
	default:
		slog.Error("check-in failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "checkin_failed", "Failed to process check-in/out", requestID)
	}
}
