// Command autocheckout runs one auto-checkout sweep and exits. It is meant
// for cron or a platform scheduler when the server's own ticker is disabled.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/domain/core"
	"timeclock/internal/platform/config"
	"timeclock/internal/platform/db"
	"timeclock/internal/platform/email"
	"timeclock/internal/platform/jobs"
	"timeclock/internal/platform/lock"
	"timeclock/internal/platform/metrics"
)

func main() {
	cfg := config.Load()

	flags := pflag.NewFlagSet("autocheckout", pflag.ExitOnError)
	at := flags.String("at", "", "sweep as if it were this local time (RFC3339 or 2006-01-02T15:04); defaults to now")
	flags.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "IANA timezone used for today and the 22:00 cutoff")
	flags.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL connection string")
	flags.StringVar(&cfg.AutoCheckoutNotifyEmail, "notify", cfg.AutoCheckoutNotifyEmail, "comma separated addresses that receive the sweep summary")
	_ = flags.Parse(os.Args[1:])

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *at); err != nil {
		slog.Error("auto checkout failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, at string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	now, err := parseAt(at, loc, time.Now())
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	var locker lock.Locker = lock.NewLocal()
	if cfg.RedisURL != "" {
		rdb, err := lock.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer rdb.Close()
		locker = lock.NewRedis(rdb, cfg.LockTTL)
	}

	directory := core.NewService(core.NewStore(pool))
	sweeper := attendance.NewService(attendance.NewStore(pool), directory, locker, loc)
	runner := jobs.New(pool, cfg, sweeper, email.New(cfg), metrics.New())
	runner.Now = func() time.Time { return now }

	result, err := runner.RunAutoCheckout(ctx)
	out, encErr := json.MarshalIndent(result, "", "  ")
	if encErr == nil {
		fmt.Println(string(out))
	}
	return err
}

// parseAt reads an optional wall-clock instant in loc.
func parseAt(raw string, loc *time.Location, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("--at %q is not RFC3339 or 2006-01-02T15:04", raw)
}
