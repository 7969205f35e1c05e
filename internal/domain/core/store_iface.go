package core

import "context"

type StoreAPI interface {
	ListEmployees(ctx context.Context, area string) ([]Employee, error)
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	CreateEmployee(ctx context.Context, emp Employee) (*Employee, error)
	UpdateEmployee(ctx context.Context, emp Employee) (*Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	ListAreas(ctx context.Context) ([]string, error)

	ListSchedules(ctx context.Context) ([]Schedule, error)
	GetSchedule(ctx context.Context, id string) (*Schedule, error)
	CreateSchedule(ctx context.Context, s Schedule) (*Schedule, error)
	UpdateSchedule(ctx context.Context, s Schedule) (*Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}
