package reportshandler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/domain/reports"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

const (
	formatJSON = "json"
	formatXLSX = "xlsx"
	formatPDF  = "pdf"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/attendance", h.handleAttendance)
		r.Get("/job-runs", h.handleJobRuns)
	})
}

func (h *Handler) handleAttendance(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	loc := h.Service.Location

	v := shared.NewValidator()
	start, end := shared.DateRange(v, r, loc)
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = formatJSON
	}
	v.Enum("format", format, []string{formatJSON, formatXLSX, formatPDF}, "must be json, xlsx or pdf")
	if v.Reject(w, requestID) {
		return
	}
	if start == "" && end == "" {
		start = attendance.DateKey(time.Now(), loc)
		end = start
	}

	rows, err := h.Service.Attendance(r.Context(), attendance.Filter{
		StartDate:  start,
		EndDate:    end,
		EmployeeID: strings.TrimSpace(r.URL.Query().Get("employeeId")),
	})
	if err != nil {
		slog.Error("attendance report failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build attendance report", requestID)
		return
	}

	filename := "asistencia-" + start
	if end != "" && end != start {
		filename += "_" + end
	}

	var buf bytes.Buffer
	switch format {
	case formatXLSX:
		err = reports.WriteXLSX(&buf, rows, loc)
		w.Header().Set("Content-Type", xlsxContentType)
	case formatPDF:
		err = reports.WritePDF(&buf, rows, reportTitle(start, end), loc)
		w.Header().Set("Content-Type", "application/pdf")
	default:
		if rows == nil {
			rows = []reports.DailySummary{}
		}
		api.Success(w, rows)
		return
	}
	if err != nil {
		w.Header().Del("Content-Type")
		slog.Error("attendance report render failed", "format", format, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render attendance report", requestID)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+"."+format))
	_, _ = w.Write(buf.Bytes())
}

func reportTitle(start, end string) string {
	if start == end || end == "" {
		return "Reporte de asistencia " + start
	}
	if start == "" {
		return "Reporte de asistencia hasta " + end
	}
	return "Reporte de asistencia " + start + " a " + end
}

func (h *Handler) handleJobRuns(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)
	q := r.URL.Query()
	filter := reports.JobRunFilter{
		JobType: strings.TrimSpace(q.Get("jobType")),
		Status:  strings.TrimSpace(q.Get("status")),
	}

	v := shared.NewValidator()
	v.Enum("status", filter.Status, []string{"running", "completed", "failed"}, "must be running, completed or failed")
	if raw := strings.TrimSpace(q.Get("startedFrom")); raw != "" {
		if from, ok := v.Date("startedFrom", raw); ok {
			filter.StartedFrom = &from
		}
	}
	if raw := strings.TrimSpace(q.Get("startedTo")); raw != "" {
		if to, ok := v.Date("startedTo", raw); ok {
			filter.StartedTo = &to
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	runs, total, err := h.Service.JobRuns(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		slog.Error("job runs list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "job_runs_failed", "failed to list job runs", requestID)
		return
	}
	if runs == nil {
		runs = []reports.JobRun{}
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, runs)
}
