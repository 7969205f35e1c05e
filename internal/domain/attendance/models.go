package attendance

import (
	"time"

	"timeclock/internal/domain/core"
)

type Event struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	Timestamp   time.Time `json:"timestamp"`
	Type        EventType `json:"type"`
	Date        string    `json:"date"`
	Ordinal     int       `json:"ordinal"`
	Notes       string    `json:"notes"`
	IsAutomatic bool      `json:"isAutomatic"`
}

// Day is the stored state of one employee's attendance on one date.
// A zero Day means nothing has been recorded yet.
type Day struct {
	EmployeeID  string
	Date        string
	NextOrdinal int
	LastEventAt *time.Time
	EntradaAt   *time.Time
	Closed      bool
}

type Stats struct {
	CheckIns        int `json:"checkIns"`
	CheckOuts       int `json:"checkOuts"`
	ActiveEmployees int `json:"activeEmployees"`
}

type CheckInResult struct {
	Event       Event
	Employee    core.Employee
	Label       string
	HoursWorked string
}

type SweepResult struct {
	Date       string   `json:"date"`
	Ran        bool     `json:"ran"`
	CheckedOut []string `json:"checkedOut"`
}

type Filter struct {
	StartDate  string
	EndDate    string
	EmployeeID string
	Limit      int
	Offset     int
}
