package core

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

const employeeColumns = `id, name, area, COALESCE(schedule_id, ''), barcode, COALESCE(photo_url, ''), created_at`

const scheduleColumns = `id, name,
       to_char(start_time, 'HH24:MI'),
       to_char(end_time, 'HH24:MI'),
       COALESCE(to_char(breakfast_start, 'HH24:MI'), ''),
       COALESCE(to_char(breakfast_end, 'HH24:MI'), ''),
       COALESCE(to_char(lunch_start, 'HH24:MI'), ''),
       COALESCE(to_char(lunch_end, 'HH24:MI'), ''),
       tolerance_minutes, is_default, created_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	if err := row.Scan(&emp.ID, &emp.Name, &emp.Area, &emp.ScheduleID, &emp.Barcode, &emp.PhotoURL, &emp.CreatedAt); err != nil {
		return nil, err
	}
	return &emp, nil
}

func scanSchedule(row pgx.Row) (*Schedule, error) {
	var s Schedule
	if err := row.Scan(
		&s.ID, &s.Name, &s.StartTime, &s.EndTime,
		&s.BreakfastStart, &s.BreakfastEnd, &s.LunchStart, &s.LunchEnd,
		&s.ToleranceMinutes, &s.IsDefault, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// mapWriteError turns driver errors into package sentinels.
func mapWriteError(err error, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicate
		case "23503":
			return ErrScheduleNotFound
		}
	}
	return err
}

func (s *Store) ListEmployees(ctx context.Context, area string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE ($1 = '' OR area = $1)
    ORDER BY name, id
  `, area)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	return emp, err
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (*Employee, error) {
	created, err := scanEmployee(s.DB.QueryRow(ctx, `
    INSERT INTO employees (id, name, area, schedule_id, barcode, photo_url)
    VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''))
    RETURNING `+employeeColumns,
		emp.ID, emp.Name, emp.Area, emp.ScheduleID, emp.Barcode, emp.PhotoURL,
	))
	if err != nil {
		return nil, mapWriteError(err, ErrEmployeeNotFound)
	}
	return created, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) (*Employee, error) {
	updated, err := scanEmployee(s.DB.QueryRow(ctx, `
    UPDATE employees
    SET name = $2, area = $3, schedule_id = NULLIF($4, ''), barcode = $5, photo_url = NULLIF($6, '')
    WHERE id = $1
    RETURNING `+employeeColumns,
		emp.ID, emp.Name, emp.Area, emp.ScheduleID, emp.Barcode, emp.PhotoURL,
	))
	if err != nil {
		return nil, mapWriteError(err, ErrEmployeeNotFound)
	}
	return updated, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) ListAreas(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `SELECT DISTINCT area FROM employees WHERE area <> ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var area string
		if err := rows.Scan(&area); err != nil {
			return nil, err
		}
		out = append(out, area)
	}
	return out, rows.Err()
}

func (s *Store) ListSchedules(ctx context.Context) ([]Schedule, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+scheduleColumns+` FROM schedules ORDER BY is_default DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Schedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sched)
	}
	return out, rows.Err()
}

func (s *Store) GetSchedule(ctx context.Context, id string) (*Schedule, error) {
	sched, err := scanSchedule(s.DB.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	return sched, err
}

// CreateSchedule inserts the schedule. When it is marked default, every other
// schedule loses the flag in the same transaction.
func (s *Store) CreateSchedule(ctx context.Context, sched Schedule) (*Schedule, error) {
	return s.writeSchedule(ctx, sched, `
    INSERT INTO schedules (name, start_time, end_time, breakfast_start, breakfast_end, lunch_start, lunch_end, tolerance_minutes, is_default)
    VALUES ($1, $2::time, $3::time, NULLIF($4, '')::time, NULLIF($5, '')::time, NULLIF($6, '')::time, NULLIF($7, '')::time, $8, $9)
    RETURNING `+scheduleColumns,
		sched.Name, sched.StartTime, sched.EndTime, sched.BreakfastStart, sched.BreakfastEnd,
		sched.LunchStart, sched.LunchEnd, sched.ToleranceMinutes, sched.IsDefault,
	)
}

func (s *Store) UpdateSchedule(ctx context.Context, sched Schedule) (*Schedule, error) {
	return s.writeSchedule(ctx, sched, `
    UPDATE schedules
    SET name = $2, start_time = $3::time, end_time = $4::time,
        breakfast_start = NULLIF($5, '')::time, breakfast_end = NULLIF($6, '')::time,
        lunch_start = NULLIF($7, '')::time, lunch_end = NULLIF($8, '')::time,
        tolerance_minutes = $9, is_default = $10
    WHERE id = $1
    RETURNING `+scheduleColumns,
		sched.ID, sched.Name, sched.StartTime, sched.EndTime, sched.BreakfastStart, sched.BreakfastEnd,
		sched.LunchStart, sched.LunchEnd, sched.ToleranceMinutes, sched.IsDefault,
	)
}

func (s *Store) writeSchedule(ctx context.Context, sched Schedule, query string, args ...any) (*Schedule, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	saved, err := scanSchedule(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapWriteError(err, ErrScheduleNotFound)
	}
	if saved.IsDefault {
		if _, err := tx.Exec(ctx, `UPDATE schedules SET is_default = false WHERE id <> $1 AND is_default`, saved.ID); err != nil {
			return nil, fmt.Errorf("clear default schedule: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}
	return nil
}
