package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"timeclock/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const eventColumns = `id, employee_id, timestamp, type, date, ordinal, notes, is_automatic`

func scanEvents(rows pgx.Rows) ([]Event, error) {
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var ev Event
		var typ string
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.Timestamp, &typ, &ev.Date, &ev.Ordinal, &ev.Notes, &ev.IsAutomatic); err != nil {
			return nil, err
		}
		ev.Type = EventType(typ)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s *Store) LoadDay(ctx context.Context, employeeID, date string) (Day, error) {
	day := Day{EmployeeID: employeeID, Date: date}
	err := s.DB.QueryRow(ctx, `
    SELECT next_ordinal, last_event_at, entrada_at, closed
    FROM attendance_days
    WHERE employee_id = $1 AND date = $2
  `, employeeID, date).Scan(&day.NextOrdinal, &day.LastEventAt, &day.EntradaAt, &day.Closed)
	if errors.Is(err, pgx.ErrNoRows) {
		return day, nil
	}
	if err != nil {
		return Day{}, err
	}
	return day, nil
}

func (s *Store) AppendEvent(ctx context.Context, ev Event, expected int) (Event, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Event{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var entradaAt any
	if ev.Type == TypeEntrada {
		entradaAt = ev.Timestamp
	}
	closes := ClosesDay(ev.Type)

	var tag pgconn.CommandTag
	if expected == 0 {
		tag, err = tx.Exec(ctx, `
      INSERT INTO attendance_days (employee_id, date, next_ordinal, last_event_at, entrada_at, closed)
      VALUES ($1, $2, 1, $3, $4, $5)
      ON CONFLICT (employee_id, date) DO NOTHING
    `, ev.EmployeeID, ev.Date, ev.Timestamp, entradaAt, closes)
	} else {
		tag, err = tx.Exec(ctx, `
      UPDATE attendance_days
      SET next_ordinal = next_ordinal + 1,
          last_event_at = $4,
          entrada_at = COALESCE(entrada_at, $5),
          closed = $6
      WHERE employee_id = $1 AND date = $2 AND next_ordinal = $3 AND NOT closed
    `, ev.EmployeeID, ev.Date, expected, ev.Timestamp, entradaAt, closes)
	}
	if err != nil {
		return Event{}, fmt.Errorf("advance attendance day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Event{}, ErrStaleDay
	}

	ev.Ordinal = expected
	err = tx.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, timestamp, type, date, ordinal, notes, is_automatic)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id
  `, ev.EmployeeID, ev.Timestamp, string(ev.Type), ev.Date, ev.Ordinal, ev.Notes, ev.IsAutomatic).Scan(&ev.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Event{}, ErrStaleDay
		}
		return Event{}, fmt.Errorf("insert attendance event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Event{}, err
	}
	return ev, nil
}

func (s *Store) ListByDate(ctx context.Context, date string) ([]Event, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+eventColumns+`
    FROM attendance
    WHERE date = $1
    ORDER BY timestamp ASC, ordinal ASC
  `, date)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM attendance WHERE 1=1`
	args := []any{}
	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	query += " ORDER BY timestamp DESC, ordinal DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (s *Store) CountByType(ctx context.Context, date string) (map[EventType]int, error) {
	rows, err := s.DB.Query(ctx, `SELECT type, COUNT(1) FROM attendance WHERE date = $1 GROUP BY type`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[EventType]int{}
	for rows.Next() {
		var typ string
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, err
		}
		counts[EventType(typ)] = count
	}
	return counts, rows.Err()
}
