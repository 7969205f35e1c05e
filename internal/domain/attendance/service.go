package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"timeclock/internal/domain/core"
	"timeclock/internal/platform/lock"
)

// Directory resolves employees by their external id.
type Directory interface {
	GetEmployee(ctx context.Context, id string) (*core.Employee, error)
}

type Service struct {
	store     StoreAPI
	directory Directory
	locker    lock.Locker
	loc       *time.Location
}

func NewService(store StoreAPI, directory Directory, locker lock.Locker, loc *time.Location) *Service {
	if locker == nil {
		locker = lock.NewLocal()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, directory: directory, locker: locker, loc: loc}
}

func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) Today(now time.Time) string {
	return DateKey(now, s.loc)
}

// CheckIn records the next event of the employee's day at now.
func (s *Service) CheckIn(ctx context.Context, employeeID string, now time.Time, source Source) (*CheckInResult, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, ErrEmployeeIDRequired
	}
	if source == "" {
		source = SourceScanner
	}

	emp, err := s.directory.GetEmployee(ctx, employeeID)
	if errors.Is(err, core.ErrEmployeeNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup employee: %w", err)
	}

	today := s.Today(now)
	release, err := s.locker.Acquire(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("lock employee %s: %w", employeeID, err)
	}
	defer release()

	day, err := s.store.LoadDay(ctx, employeeID, today)
	if err != nil {
		return nil, fmt.Errorf("load attendance day: %w", err)
	}
	if day.LastEventAt != nil {
		if remaining := CooldownRemaining(*day.LastEventAt, now); remaining > 0 {
			return nil, &CooldownError{Remaining: remaining}
		}
	}
	if day.Closed {
		return nil, ErrDayComplete
	}
	typ, label, ok := NextStep(day.NextOrdinal)
	if !ok {
		return nil, ErrDayComplete
	}

	saved, err := s.store.AppendEvent(ctx, Event{
		EmployeeID: employeeID,
		Timestamp:  now,
		Type:       typ,
		Date:       today,
		Notes:      fmt.Sprintf("%s via %s", label, source),
	}, day.NextOrdinal)
	if err != nil {
		return nil, err
	}

	worked := NoWorkedTime
	if typ == TypeSalidaGeneral && day.EntradaAt != nil {
		worked = FormatWorked(saved.Timestamp.Sub(*day.EntradaAt))
	}
	return &CheckInResult{Event: saved, Employee: *emp, Label: label, HoursWorked: worked}, nil
}

// RunAutoCheckouts closes every open day of today once the local cutoff hour
// has passed. Running it again the same day appends nothing.
func (s *Service) RunAutoCheckouts(ctx context.Context, now time.Time) (SweepResult, error) {
	result := SweepResult{Date: s.Today(now), CheckedOut: []string{}}
	if !PastCutoff(now, s.loc) {
		return result, nil
	}
	result.Ran = true

	events, err := s.store.ListByDate(ctx, result.Date)
	if err != nil {
		return result, fmt.Errorf("load today's attendance: %w", err)
	}

	var errs []error
	for _, employeeID := range PendingCheckouts(events) {
		closed, err := s.autoCheckout(ctx, employeeID, result.Date, now)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			errs = append(errs, fmt.Errorf("auto checkout %s: %w", employeeID, err))
			continue
		}
		if closed {
			result.CheckedOut = append(result.CheckedOut, employeeID)
		}
	}
	return result, errors.Join(errs...)
}

func (s *Service) autoCheckout(ctx context.Context, employeeID, date string, now time.Time) (bool, error) {
	closed := false
	err := lock.With(ctx, s.locker, employeeID, func() error {
		day, err := s.store.LoadDay(ctx, employeeID, date)
		if err != nil {
			return err
		}
		if day.EntradaAt == nil || day.Closed {
			return nil
		}
		_, err = s.store.AppendEvent(ctx, Event{
			EmployeeID:  employeeID,
			Timestamp:   now,
			Type:        TypeAutoCheckout,
			Date:        date,
			Notes:       AutoCheckoutNotes,
			IsAutomatic: true,
		}, day.NextOrdinal)
		if errors.Is(err, ErrStaleDay) {
			slog.Warn("auto checkout skipped, day changed concurrently", "employee_id", employeeID, "date", date)
			return nil
		}
		if err != nil {
			return err
		}
		closed = true
		return nil
	})
	return closed, err
}

// TodayStats recomputes the counters for now's date on every call.
func (s *Service) TodayStats(ctx context.Context, now time.Time) (Stats, error) {
	counts, err := s.store.CountByType(ctx, s.Today(now))
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(counts), nil
}

// TodayEvents lists now's events, newest first.
func (s *Service) TodayEvents(ctx context.Context, now time.Time) ([]Event, error) {
	today := s.Today(now)
	return s.store.List(ctx, Filter{StartDate: today, EndDate: today})
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Event, error) {
	return s.store.List(ctx, filter)
}
