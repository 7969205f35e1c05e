package corehandler

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/core"
	"timeclock/internal/domain/credentials"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
)

func (h *Handler) handleCredential(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	emp, err := h.Service.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		writeError(w, r, err, "credential_failed", "failed to build credential")
		return
	}

	var sched *core.Schedule
	if emp.ScheduleID != "" {
		sched, err = h.Service.GetSchedule(r.Context(), emp.ScheduleID)
		if err != nil && !errors.Is(err, core.ErrScheduleNotFound) {
			writeError(w, r, err, "credential_failed", "failed to build credential")
			return
		}
	}

	var photo []byte
	if file, ok := PhotoPath(h.UploadDir, emp.PhotoURL); ok {
		photo, err = os.ReadFile(file)
		if err != nil {
			slog.Warn("credential photo unavailable", "employeeId", emp.ID, "err", err)
			photo = nil
		}
	}

	var buf bytes.Buffer
	if err := credentials.CardPDF(&buf, *emp, sched, photo); err != nil {
		slog.Error("credential render failed", "employeeId", emp.ID, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "credential_failed", "failed to build credential", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"credencial-%s.pdf\"", emp.ID))
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleBarcode(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	emp, err := h.Service.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		writeError(w, r, err, "barcode_failed", "failed to render barcode")
		return
	}

	code := emp.Barcode
	if code == "" {
		code = emp.ID
	}
	png, err := credentials.BarcodePNG(code)
	if err != nil {
		slog.Error("barcode render failed", "employeeId", emp.ID, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "barcode_failed", "failed to render barcode", requestID)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}
