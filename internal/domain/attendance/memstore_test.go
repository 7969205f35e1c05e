package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"timeclock/internal/domain/core"
)

type memStore struct {
	mu     sync.Mutex
	days   map[string]Day
	events []Event
}

func newMemStore() *memStore {
	return &memStore{days: map[string]Day{}}
}

func dayKey(employeeID, date string) string { return employeeID + "|" + date }

func (m *memStore) LoadDay(ctx context.Context, employeeID, date string) (Day, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if day, ok := m.days[dayKey(employeeID, date)]; ok {
		return day, nil
	}
	return Day{EmployeeID: employeeID, Date: date}, nil
}

func (m *memStore) AppendEvent(ctx context.Context, ev Event, expected int) (Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := dayKey(ev.EmployeeID, ev.Date)
	day, ok := m.days[key]
	if !ok {
		day = Day{EmployeeID: ev.EmployeeID, Date: ev.Date}
	}
	if day.NextOrdinal != expected || day.Closed {
		return Event{}, ErrStaleDay
	}
	ts := ev.Timestamp
	day.NextOrdinal++
	day.LastEventAt = &ts
	if ev.Type == TypeEntrada && day.EntradaAt == nil {
		day.EntradaAt = &ts
	}
	day.Closed = ClosesDay(ev.Type)
	m.days[key] = day

	ev.Ordinal = expected
	ev.ID = fmt.Sprintf("ev-%d", len(m.events)+1)
	m.events = append(m.events, ev)
	return ev, nil
}

func (m *memStore) ListByDate(ctx context.Context, date string) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, ev := range m.events {
		if ev.Date == date {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *memStore) List(ctx context.Context, filter Filter) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, ev := range m.events {
		if filter.StartDate != "" && ev.Date < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && ev.Date > filter.EndDate {
			continue
		}
		if filter.EmployeeID != "" && ev.EmployeeID != filter.EmployeeID {
			continue
		}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (m *memStore) CountByType(ctx context.Context, date string) (map[EventType]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[EventType]int{}
	for _, ev := range m.events {
		if ev.Date == date {
			counts[ev.Type]++
		}
	}
	return counts, nil
}

func (m *memStore) count(employeeID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ev := range m.events {
		if ev.EmployeeID == employeeID {
			n++
		}
	}
	return n
}

type memDirectory map[string]core.Employee

func (d memDirectory) GetEmployee(ctx context.Context, id string) (*core.Employee, error) {
	emp, ok := d[id]
	if !ok {
		return nil, core.ErrEmployeeNotFound
	}
	return &emp, nil
}
