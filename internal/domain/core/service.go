package core

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func (s *Service) ListEmployees(ctx context.Context, area string) ([]Employee, error) {
	return s.store.ListEmployees(ctx, strings.TrimSpace(area))
}

func (s *Service) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmployeeNotFound
	}
	return s.store.GetEmployee(ctx, id)
}

// CreateEmployee stores a new employee. An empty barcode defaults to the id,
// which is what the printed credential encodes.
func (s *Service) CreateEmployee(ctx context.Context, emp Employee) (*Employee, error) {
	NormalizeEmployee(&emp)
	if emp.Barcode == "" {
		emp.Barcode = emp.ID
	}
	if err := validateEmployee(emp); err != nil {
		return nil, err
	}
	if err := s.checkSchedule(ctx, emp.ScheduleID); err != nil {
		return nil, err
	}
	return s.store.CreateEmployee(ctx, emp)
}

// UpdateEmployee applies a partial update and returns the stored record along
// with the state before the change.
func (s *Service) UpdateEmployee(ctx context.Context, id string, patch EmployeePatch) (*Employee, *Employee, error) {
	before, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	next := *before
	ApplyEmployeePatch(&next, patch)
	if err := validateEmployee(next); err != nil {
		return nil, nil, err
	}
	if patch.ScheduleID != nil {
		if err := s.checkSchedule(ctx, next.ScheduleID); err != nil {
			return nil, nil, err
		}
	}
	updated, err := s.store.UpdateEmployee(ctx, next)
	if err != nil {
		return nil, nil, err
	}
	return updated, before, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	return s.store.DeleteEmployee(ctx, strings.TrimSpace(id))
}

// Departments returns the distinct employee areas in Spanish collation order.
func (s *Service) Departments(ctx context.Context) ([]string, error) {
	areas, err := s.store.ListAreas(ctx)
	if err != nil {
		return nil, err
	}
	return SortAreas(areas), nil
}

func (s *Service) ListSchedules(ctx context.Context) ([]Schedule, error) {
	return s.store.ListSchedules(ctx)
}

func (s *Service) GetSchedule(ctx context.Context, id string) (*Schedule, error) {
	return s.store.GetSchedule(ctx, strings.TrimSpace(id))
}

func (s *Service) CreateSchedule(ctx context.Context, sched Schedule) (*Schedule, error) {
	if err := NormalizeSchedule(&sched); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if sched.Name == "" {
		return nil, validationf("name is required")
	}
	return s.store.CreateSchedule(ctx, sched)
}

func (s *Service) UpdateSchedule(ctx context.Context, id string, patch SchedulePatch) (*Schedule, *Schedule, error) {
	before, err := s.GetSchedule(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	next := *before
	ApplySchedulePatch(&next, patch)
	if err := NormalizeSchedule(&next); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if next.Name == "" {
		return nil, nil, validationf("name is required")
	}
	updated, err := s.store.UpdateSchedule(ctx, next)
	if err != nil {
		return nil, nil, err
	}
	return updated, before, nil
}

func (s *Service) DeleteSchedule(ctx context.Context, id string) error {
	return s.store.DeleteSchedule(ctx, strings.TrimSpace(id))
}

func (s *Service) checkSchedule(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if _, err := s.store.GetSchedule(ctx, id); err != nil {
		return err
	}
	return nil
}

func validateEmployee(emp Employee) error {
	switch {
	case emp.ID == "":
		return validationf("id is required")
	case emp.Name == "":
		return validationf("name is required")
	case emp.Area == "":
		return validationf("area is required")
	case emp.Barcode == "":
		return validationf("barcode is required")
	}
	return nil
}
