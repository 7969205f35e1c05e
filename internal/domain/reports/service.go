package reports

import (
	"context"
	"time"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/domain/core"
)

type EventLister interface {
	List(ctx context.Context, filter attendance.Filter) ([]attendance.Event, error)
}

type EmployeeLister interface {
	ListEmployees(ctx context.Context, area string) ([]core.Employee, error)
}

type JobRunStore interface {
	ListJobRuns(ctx context.Context, filter JobRunFilter, limit, offset int) ([]JobRun, error)
	CountJobRuns(ctx context.Context, filter JobRunFilter) (int, error)
}

type Service struct {
	Events    EventLister
	Employees EmployeeLister
	Runs      JobRunStore
	Location  *time.Location
}

func NewService(events EventLister, employees EmployeeLister, runs JobRunStore, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{Events: events, Employees: employees, Runs: runs, Location: loc}
}

// Attendance summarises the ledger for the filter's date range. Limit and
// offset are ignored so that every event in range is summarised.
func (s *Service) Attendance(ctx context.Context, filter attendance.Filter) ([]DailySummary, error) {
	filter.Limit, filter.Offset = 0, 0
	events, err := s.Events.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	employees, err := s.Employees.ListEmployees(ctx, "")
	if err != nil {
		return nil, err
	}
	byID := make(map[string]core.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}
	return BuildDailySummaries(events, byID), nil
}

func (s *Service) JobRuns(ctx context.Context, filter JobRunFilter, limit, offset int) ([]JobRun, int, error) {
	total, err := s.Runs.CountJobRuns(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	runs, err := s.Runs.ListJobRuns(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return runs, total, nil
}
