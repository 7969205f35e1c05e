package attendancehandler

import (
	"log/slog"
	"net/http"
	"strings"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	start, end := shared.DateRange(v, r, h.Service.Location())
	if v.Reject(w, requestID) {
		return
	}
	// Unpaged unless the caller sends limit.
	page := shared.ParsePagination(r, 0, 5000)

	events, err := h.Service.List(r.Context(), attendance.Filter{
		StartDate:  start,
		EndDate:    end,
		EmployeeID: strings.TrimSpace(r.URL.Query().Get("employeeId")),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		slog.Error("attendance list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "attendance_list_failed", "Failed to fetch attendance", requestID)
		return
	}
	writeEvents(w, events)
}

func (h *Handler) handleToday(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.TodayEvents(r.Context(), h.now())
	if err != nil {
		requestID := middleware.GetRequestID(r.Context())
		slog.Error("today's attendance failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "attendance_list_failed", "Failed to fetch today's attendance", requestID)
		return
	}
	writeEvents(w, events)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.TodayStats(r.Context(), h.now())
	if err != nil {
		requestID := middleware.GetRequestID(r.Context())
		slog.Error("attendance stats failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "attendance_stats_failed", "Failed to fetch attendance stats", requestID)
		return
	}
	api.Success(w, stats)
}

func (h *Handler) handleAutoCheckout(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if h.Sweeper == nil {
		api.Fail(w, http.StatusServiceUnavailable, "sweeper_unavailable", "auto checkout is not configured", requestID)
		return
	}
	result, err := h.Sweeper.RunAutoCheckout(r.Context())
	if err != nil {
		slog.Error("manual auto checkout failed", "err", err, "requestId", requestID, "checkedOut", len(result.CheckedOut))
		api.FailWithDetails(w, http.StatusInternalServerError, "auto_checkout_failed", "auto checkout finished with errors", result, requestID)
		return
	}
	api.Success(w, result)
}

func writeEvents(w http.ResponseWriter, events []attendance.Event) {
	if events == nil {
		events = []attendance.Event{}
	}
	api.Success(w, events)
}
