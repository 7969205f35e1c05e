package attendance

import "context"

type StoreAPI interface {
	LoadDay(ctx context.Context, employeeID, date string) (Day, error)
	// AppendEvent stores ev at ordinal expected and advances the day. It
	// returns ErrStaleDay when the day no longer sits at expected or is closed.
	AppendEvent(ctx context.Context, ev Event, expected int) (Event, error)
	ListByDate(ctx context.Context, date string) ([]Event, error)
	List(ctx context.Context, filter Filter) ([]Event, error)
	CountByType(ctx context.Context, date string) (map[EventType]int, error)
}
