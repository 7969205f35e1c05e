package reports

import "time"

// DailySummary condenses one employee's events on one date.
type DailySummary struct {
	EmployeeID    string     `json:"employeeId"`
	EmployeeName  string     `json:"employeeName"`
	Area          string     `json:"area"`
	Date          string     `json:"date"`
	FirstIn       *time.Time `json:"firstIn"`
	CheckOut      *time.Time `json:"checkOut"`
	Worked        string     `json:"worked"`
	WorkedMinutes int        `json:"workedMinutes"`
	Events        int        `json:"events"`
	Automatic     bool       `json:"automatic"`
}

type JobRun struct {
	ID          string         `json:"id"`
	JobType     string         `json:"jobType"`
	Status      string         `json:"status"`
	Details     map[string]any `json:"details"`
	StartedAt   time.Time      `json:"startedAt"`
	CompletedAt *time.Time     `json:"completedAt"`
}

type JobRunFilter struct {
	JobType     string
	Status      string
	StartedFrom *time.Time
	StartedTo   *time.Time
}
