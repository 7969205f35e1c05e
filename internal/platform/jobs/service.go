package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/platform/config"
	"timeclock/internal/platform/email"
	"timeclock/internal/platform/metrics"
	"timeclock/internal/platform/querier"
)

const JobAutoCheckout = "auto_checkout"

// Sweeper closes open attendance days.
type Sweeper interface {
	RunAutoCheckouts(ctx context.Context, now time.Time) (attendance.SweepResult, error)
	Location() *time.Location
}

type Service struct {
	DB      querier.Querier
	Cfg     config.Config
	Sweeper Sweeper
	Mailer  email.Mailer
	Metrics *metrics.Collector
	Now     func() time.Time
	queue   chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db querier.Querier, cfg config.Config, sweeper Sweeper, mailer email.Mailer, collector *metrics.Collector) *Service {
	return &Service{
		DB:      db,
		Cfg:     cfg,
		Sweeper: sweeper,
		Mailer:  mailer,
		Metrics: collector,
		Now:     time.Now,
		queue:   make(chan job, 128),
	}
}

// Start runs the worker and, when an interval is configured, the auto-checkout
// scheduler. Both stop when ctx is done.
func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.AutoCheckoutInterval > 0 {
		go s.scheduleAutoCheckouts(ctx, s.Cfg.AutoCheckoutInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// RunAutoCheckout performs one sweep at the current time, records it in
// job_runs and mails a summary when days were closed.
func (s *Service) RunAutoCheckout(ctx context.Context) (attendance.SweepResult, error) {
	var result attendance.SweepResult
	_, err := s.RunNow(ctx, JobAutoCheckout, func(ctx context.Context) (any, error) {
		var err error
		result, err = s.sweep(ctx)
		return result, err
	})
	return result, err
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if s.DB != nil {
		if err := s.DB.QueryRow(ctx, `
      INSERT INTO job_runs (job_type, status)
      VALUES ($1, $2)
      RETURNING id
    `, j.Type, "running").Scan(&runID); err != nil {
			slog.Warn("job run insert failed", "err", err)
		}
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

// scheduleAutoCheckouts enqueues a sweep on every tick past the cutoff hour.
// Ticks before the cutoff are skipped without touching job_runs.
func (s *Service) scheduleAutoCheckouts(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !attendance.PastCutoff(s.Now(), s.Sweeper.Location()) {
				continue
			}
			s.Enqueue(JobAutoCheckout, func(ctx context.Context) (any, error) {
				return s.sweep(ctx)
			})
		}
	}
}

func (s *Service) sweep(ctx context.Context) (attendance.SweepResult, error) {
	result, err := s.Sweeper.RunAutoCheckouts(ctx, s.Now())
	if s.Metrics != nil && result.Ran {
		s.Metrics.Sweep(len(result.CheckedOut))
	}
	if len(result.CheckedOut) > 0 {
		s.notify(ctx, result)
	}
	return result, err
}

func (s *Service) notify(ctx context.Context, result attendance.SweepResult) {
	if s.Mailer == nil {
		return
	}
	to := email.Recipients(s.Cfg.AutoCheckoutNotifyEmail)
	msg, ok := email.SweepSummary(s.Cfg.EmailFrom, to, result)
	if !ok {
		return
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		slog.Warn("auto checkout summary email failed", "to", to, "err", err)
	}
}
