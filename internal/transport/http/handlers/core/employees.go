package corehandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/audit"
	"timeclock/internal/domain/core"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

type employeePayload struct {
	ID         string  `json:"id"`
	Name       *string `json:"name"`
	Area       *string `json:"area"`
	ScheduleID *string `json:"scheduleId"`
	Barcode    *string `json:"barcode"`
	PhotoURL   *string `json:"photoUrl"`

	// uploaded is set when PhotoURL names a file stored by this request.
	uploaded bool
}

func (p employeePayload) patch() core.EmployeePatch {
	return core.EmployeePatch{Name: p.Name, Area: p.Area, ScheduleID: p.ScheduleID, Barcode: p.Barcode, PhotoURL: p.PhotoURL}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// readEmployeePayload accepts JSON or a multipart form whose optional "photo"
// file is stored under the upload directory.
func (h *Handler) readEmployeePayload(w http.ResponseWriter, r *http.Request) (employeePayload, bool) {
	requestID := middleware.GetRequestID(r.Context())
	var payload employeePayload
	if !isMultipart(r) {
		return payload, shared.DecodeJSON(w, r, &payload, requestID)
	}

	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		failUpload(w, err, requestID)
		return payload, false
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	formValue := func(key string) *string {
		values, ok := r.MultipartForm.Value[key]
		if !ok || len(values) == 0 {
			return nil
		}
		v := values[0]
		return &v
	}
	payload.ID = deref(formValue("id"))
	payload.Name = formValue("name")
	payload.Area = formValue("area")
	payload.ScheduleID = formValue("scheduleId")
	payload.Barcode = formValue("barcode")

	url, err := savePhoto(r, h.UploadDir)
	if err != nil {
		failUpload(w, err, requestID)
		return payload, false
	}
	if url != "" {
		payload.PhotoURL = &url
		payload.uploaded = true
	}
	return payload, true
}

// discardPhoto removes a photo stored by readEmployeePayload when the request
// fails afterwards.
func (h *Handler) discardPhoto(payload employeePayload) {
	if !payload.uploaded || payload.PhotoURL == nil {
		return
	}
	if err := removePhoto(h.UploadDir, *payload.PhotoURL); err != nil {
		slog.Warn("remove rejected photo failed", "photoUrl", *payload.PhotoURL, "err", err)
	}
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context(), r.URL.Query().Get("area"))
	if err != nil {
		writeError(w, r, err, "employee_list_failed", "failed to list employees")
		return
	}
	if employees == nil {
		employees = []core.Employee{}
	}
	api.Success(w, employees)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		writeError(w, r, err, "employee_get_failed", "failed to load employee")
		return
	}
	api.Success(w, emp)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.readEmployeePayload(w, r)
	if !ok {
		return
	}

	v := shared.NewValidator()
	v.Required("id", payload.ID, "is required")
	v.Required("name", deref(payload.Name), "is required")
	v.Required("area", deref(payload.Area), "is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		h.discardPhoto(payload)
		return
	}

	emp, err := h.Service.CreateEmployee(r.Context(), core.Employee{
		ID:         payload.ID,
		Name:       deref(payload.Name),
		Area:       deref(payload.Area),
		ScheduleID: deref(payload.ScheduleID),
		Barcode:    deref(payload.Barcode),
		PhotoURL:   deref(payload.PhotoURL),
	})
	if err != nil {
		h.discardPhoto(payload)
		writeError(w, r, err, "employee_create_failed", "failed to create employee")
		return
	}

	h.record(r, audit.ActionCreate, audit.EntityEmployee, emp.ID, nil, emp)
	api.Created(w, emp)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.readEmployeePayload(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if payload.ID != "" && payload.ID != employeeID {
		h.discardPhoto(payload)
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Field: "id", Reason: "is immutable"}})
		return
	}

	updated, before, err := h.Service.UpdateEmployee(r.Context(), employeeID, payload.patch())
	if err != nil {
		h.discardPhoto(payload)
		writeError(w, r, err, "employee_update_failed", "failed to update employee")
		return
	}
	if before.PhotoURL != "" && before.PhotoURL != updated.PhotoURL {
		if err := removePhoto(h.UploadDir, before.PhotoURL); err != nil {
			slog.Warn("remove replaced photo failed", "employeeId", employeeID, "err", err)
		}
	}

	h.record(r, audit.ActionUpdate, audit.EntityEmployee, updated.ID, before, updated)
	api.Success(w, updated)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	before, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		writeError(w, r, err, "employee_delete_failed", "failed to delete employee")
		return
	}
	if err := h.Service.DeleteEmployee(r.Context(), employeeID); err != nil {
		writeError(w, r, err, "employee_delete_failed", "failed to delete employee")
		return
	}
	if before.PhotoURL != "" {
		if err := removePhoto(h.UploadDir, before.PhotoURL); err != nil {
			slog.Warn("remove employee photo failed", "employeeId", employeeID, "err", err)
		}
	}

	h.record(r, audit.ActionDelete, audit.EntityEmployee, employeeID, before, nil)
	api.NoContent(w)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Service.Departments(r.Context())
	if err != nil {
		writeError(w, r, err, "department_list_failed", "failed to list departments")
		return
	}
	api.Success(w, areas)
}
