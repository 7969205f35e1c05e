package core

import (
	"context"
	"errors"
	"testing"
)

type memStore struct {
	employees map[string]Employee
	schedules map[string]Schedule
}

func newMemStore() *memStore {
	return &memStore{employees: map[string]Employee{}, schedules: map[string]Schedule{}}
}

func (m *memStore) ListEmployees(ctx context.Context, area string) ([]Employee, error) {
	var out []Employee
	for _, emp := range m.employees {
		if area == "" || emp.Area == area {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (m *memStore) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return &emp, nil
}

func (m *memStore) CreateEmployee(ctx context.Context, emp Employee) (*Employee, error) {
	if _, ok := m.employees[emp.ID]; ok {
		return nil, ErrDuplicate
	}
	m.employees[emp.ID] = emp
	return &emp, nil
}

func (m *memStore) UpdateEmployee(ctx context.Context, emp Employee) (*Employee, error) {
	m.employees[emp.ID] = emp
	return &emp, nil
}

func (m *memStore) DeleteEmployee(ctx context.Context, id string) error {
	if _, ok := m.employees[id]; !ok {
		return ErrEmployeeNotFound
	}
	delete(m.employees, id)
	return nil
}

func (m *memStore) ListAreas(ctx context.Context) ([]string, error) {
	var out []string
	for _, emp := range m.employees {
		out = append(out, emp.Area)
	}
	return out, nil
}

func (m *memStore) ListSchedules(ctx context.Context) ([]Schedule, error) {
	var out []Schedule
	for _, s := range m.schedules {
		out = append(out, s)
	}
	return out, nil
}

func (m *memStore) GetSchedule(ctx context.Context, id string) (*Schedule, error) {
	s, ok := m.schedules[id]
	if !ok {
		return nil, ErrScheduleNotFound
	}
	return &s, nil
}

func (m *memStore) CreateSchedule(ctx context.Context, s Schedule) (*Schedule, error) {
	s.ID = "sched-" + s.Name
	m.schedules[s.ID] = s
	return &s, nil
}

func (m *memStore) UpdateSchedule(ctx context.Context, s Schedule) (*Schedule, error) {
	m.schedules[s.ID] = s
	return &s, nil
}

func (m *memStore) DeleteSchedule(ctx context.Context, id string) error {
	delete(m.schedules, id)
	return nil
}

func TestCreateEmployeeDefaultsBarcodeToID(t *testing.T) {
	svc := NewService(newMemStore())

	emp, err := svc.CreateEmployee(context.Background(), Employee{ID: " EMP010 ", Name: "Luis", Area: "Corte"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emp.ID != "EMP010" || emp.Barcode != "EMP010" {
		t.Fatalf("expected trimmed id reused as barcode, got %+v", emp)
	}
}

func TestCreateEmployeeRequiresName(t *testing.T) {
	svc := NewService(newMemStore())

	_, err := svc.CreateEmployee(context.Background(), Employee{ID: "EMP011", Area: "Corte"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateEmployeeRejectsUnknownSchedule(t *testing.T) {
	svc := NewService(newMemStore())

	_, err := svc.CreateEmployee(context.Background(), Employee{ID: "EMP012", Name: "Eva", Area: "Corte", ScheduleID: "missing"})
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
}

func TestUpdateEmployeeReturnsPreviousState(t *testing.T) {
	store := newMemStore()
	store.employees["EMP013"] = Employee{ID: "EMP013", Name: "Rosa", Area: "Corte", Barcode: "B13"}
	svc := NewService(store)

	updated, before, err := svc.UpdateEmployee(context.Background(), "EMP013", EmployeePatch{Area: strPtr("Bordado")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before.Area != "Corte" || updated.Area != "Bordado" {
		t.Fatalf("unexpected before/after: %+v %+v", before, updated)
	}
}

func TestCreateScheduleValidatesWindows(t *testing.T) {
	svc := NewService(newMemStore())

	_, err := svc.CreateSchedule(context.Background(), Schedule{Name: "Nocturno", StartTime: "17:00", EndTime: "08:00"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDepartmentsAreSortedAndDistinct(t *testing.T) {
	store := newMemStore()
	store.employees["1"] = Employee{ID: "1", Area: "Corte"}
	store.employees["2"] = Employee{ID: "2", Area: "Almacén"}
	store.employees["3"] = Employee{ID: "3", Area: "Corte"}
	svc := NewService(store)

	areas, err := svc.Departments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(areas) != 2 || areas[0] != "Almacén" || areas[1] != "Corte" {
		t.Fatalf("unexpected departments: %v", areas)
	}
}
