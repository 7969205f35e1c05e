package core

import "strings"

// NormalizeEmployee trims every text field in place.
func NormalizeEmployee(emp *Employee) {
	emp.ID = strings.TrimSpace(emp.ID)
	emp.Name = strings.TrimSpace(emp.Name)
	emp.Area = strings.TrimSpace(emp.Area)
	emp.ScheduleID = strings.TrimSpace(emp.ScheduleID)
	emp.Barcode = strings.TrimSpace(emp.Barcode)
	emp.PhotoURL = strings.TrimSpace(emp.PhotoURL)
}

// ApplyEmployeePatch copies the non-nil patch fields onto emp.
func ApplyEmployeePatch(emp *Employee, patch EmployeePatch) {
	if patch.Name != nil {
		emp.Name = *patch.Name
	}
	if patch.Area != nil {
		emp.Area = *patch.Area
	}
	if patch.ScheduleID != nil {
		emp.ScheduleID = *patch.ScheduleID
	}
	if patch.Barcode != nil {
		emp.Barcode = *patch.Barcode
	}
	if patch.PhotoURL != nil {
		emp.PhotoURL = *patch.PhotoURL
	}
	NormalizeEmployee(emp)
}

// ApplySchedulePatch copies the non-nil patch fields onto s.
func ApplySchedulePatch(s *Schedule, patch SchedulePatch) {
	if patch.Name != nil {
		s.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.StartTime != nil {
		s.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		s.EndTime = *patch.EndTime
	}
	if patch.BreakfastStart != nil {
		s.BreakfastStart = *patch.BreakfastStart
	}
	if patch.BreakfastEnd != nil {
		s.BreakfastEnd = *patch.BreakfastEnd
	}
	if patch.LunchStart != nil {
		s.LunchStart = *patch.LunchStart
	}
	if patch.LunchEnd != nil {
		s.LunchEnd = *patch.LunchEnd
	}
	if patch.ToleranceMinutes != nil {
		s.ToleranceMinutes = *patch.ToleranceMinutes
	}
	if patch.IsDefault != nil {
		s.IsDefault = *patch.IsDefault
	}
}
