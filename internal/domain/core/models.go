package core

import "time"

type Employee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Area       string    `json:"area"`
	ScheduleID string    `json:"scheduleId"`
	Barcode    string    `json:"barcode"`
	PhotoURL   string    `json:"photoUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}

// EmployeePatch carries a partial update; nil fields are left unchanged.
// The employee id is immutable and therefore absent.
type EmployeePatch struct {
	Name       *string `json:"name"`
	Area       *string `json:"area"`
	ScheduleID *string `json:"scheduleId"`
	Barcode    *string `json:"barcode"`
	PhotoURL   *string `json:"photoUrl"`
}

type Schedule struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	BreakfastStart   string    `json:"breakfastStart"`
	BreakfastEnd     string    `json:"breakfastEnd"`
	LunchStart       string    `json:"lunchStart"`
	LunchEnd         string    `json:"lunchEnd"`
	ToleranceMinutes int       `json:"toleranceMinutes"`
	IsDefault        bool      `json:"isDefault"`
	CreatedAt        time.Time `json:"createdAt"`
}

type SchedulePatch struct {
	Name             *string `json:"name"`
	StartTime        *string `json:"startTime"`
	EndTime          *string `json:"endTime"`
	BreakfastStart   *string `json:"breakfastStart"`
	BreakfastEnd     *string `json:"breakfastEnd"`
	LunchStart       *string `json:"lunchStart"`
	LunchEnd         *string `json:"lunchEnd"`
	ToleranceMinutes *int    `json:"toleranceMinutes"`
	IsDefault        *bool   `json:"isDefault"`
}
