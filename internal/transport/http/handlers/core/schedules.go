package corehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"timeclock/internal/domain/audit"
	"timeclock/internal/domain/core"
	"timeclock/internal/transport/http/api"
	"timeclock/internal/transport/http/middleware"
	"timeclock/internal/transport/http/shared"
)

func validateClocks(v *shared.Validator, patch core.SchedulePatch) {
	fields := map[string]*string{
		"startTime":      patch.StartTime,
		"endTime":        patch.EndTime,
		"breakfastStart": patch.BreakfastStart,
		"breakfastEnd":   patch.BreakfastEnd,
		"lunchStart":     patch.LunchStart,
		"lunchEnd":       patch.LunchEnd,
	}
	for field, value := range fields {
		if value != nil {
			v.Clock(field, *value)
		}
	}
	if patch.ToleranceMinutes != nil && (*patch.ToleranceMinutes < 0 || *patch.ToleranceMinutes > core.MaxToleranceMinutes) {
		v.Add("toleranceMinutes", "must be between 0 and 240")
	}
}

func (h *Handler) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.Service.ListSchedules(r.Context())
	if err != nil {
		writeError(w, r, err, "schedule_list_failed", "failed to list schedules")
		return
	}
	if schedules == nil {
		schedules = []core.Schedule{}
	}
	api.Success(w, schedules)
}

func (h *Handler) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	sched, err := h.Service.GetSchedule(r.Context(), chi.URLParam(r, "scheduleID"))
	if err != nil {
		writeError(w, r, err, "schedule_get_failed", "failed to load schedule")
		return
	}
	api.Success(w, sched)
}

func (h *Handler) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload core.SchedulePatch
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	v := shared.NewValidator()
	if payload.Name == nil {
		v.Add("name", "is required")
	} else {
		v.Required("name", *payload.Name, "is required")
	}
	if payload.StartTime == nil || *payload.StartTime == "" {
		v.Add("startTime", "is required")
	}
	if payload.EndTime == nil || *payload.EndTime == "" {
		v.Add("endTime", "is required")
	}
	validateClocks(v, payload)
	if v.Reject(w, requestID) {
		return
	}

	var sched core.Schedule
	core.ApplySchedulePatch(&sched, payload)
	if payload.ToleranceMinutes == nil {
		sched.ToleranceMinutes = core.DefaultToleranceMinutes
	}
	created, err := h.Service.CreateSchedule(r.Context(), sched)
	if err != nil {
		writeError(w, r, err, "schedule_create_failed", "failed to create schedule")
		return
	}

	h.record(r, audit.ActionCreate, audit.EntitySchedule, created.ID, nil, created)
	api.Created(w, created)
}

func (h *Handler) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload core.SchedulePatch
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	v := shared.NewValidator()
	if payload.Name != nil {
		v.Required("name", *payload.Name, "must not be empty")
	}
	validateClocks(v, payload)
	if v.Reject(w, requestID) {
		return
	}

	updated, before, err := h.Service.UpdateSchedule(r.Context(), chi.URLParam(r, "scheduleID"), payload)
	if err != nil {
		writeError(w, r, err, "schedule_update_failed", "failed to update schedule")
		return
	}

	h.record(r, audit.ActionUpdate, audit.EntitySchedule, updated.ID, before, updated)
	api.Success(w, updated)
}

func (h *Handler) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")
	before, err := h.Service.GetSchedule(r.Context(), scheduleID)
	if err != nil {
		writeError(w, r, err, "schedule_delete_failed", "failed to delete schedule")
		return
	}
	if err := h.Service.DeleteSchedule(r.Context(), scheduleID); err != nil {
		writeError(w, r, err, "schedule_delete_failed", "failed to delete schedule")
		return
	}

	h.record(r, audit.ActionDelete, audit.EntitySchedule, scheduleID, before, nil)
	api.NoContent(w)
}
