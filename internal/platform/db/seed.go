package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"timeclock/internal/domain/core"
)

// DefaultSchedule is installed on an empty catalog so new employees always
// have a schedule to point at.
func DefaultSchedule() core.Schedule {
	return core.Schedule{
		Name:             core.DefaultScheduleName,
		StartTime:        "08:00",
		EndTime:          "17:00",
		BreakfastStart:   "10:00",
		BreakfastEnd:     "10:20",
		LunchStart:       "14:00",
		LunchEnd:         "14:30",
		ToleranceMinutes: core.DefaultToleranceMinutes,
		IsDefault:        true,
	}
}

func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM schedules").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	sched, err := core.NewService(core.NewStore(pool)).CreateSchedule(ctx, DefaultSchedule())
	if err != nil {
		return err
	}
	slog.Info("default schedule seeded", "scheduleId", sched.ID, "name", sched.Name)
	return nil
}
