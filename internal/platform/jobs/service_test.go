package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/platform/config"
	"timeclock/internal/platform/email"
	"timeclock/internal/platform/metrics"
)

type stubSweeper struct {
	result attendance.SweepResult
	err    error
	calls  int
}

func (s *stubSweeper) RunAutoCheckouts(ctx context.Context, now time.Time) (attendance.SweepResult, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubSweeper) Location() *time.Location { return time.UTC }

type recordingMailer struct{ sent []email.Message }

func (m *recordingMailer) Send(ctx context.Context, msg email.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func TestRunAutoCheckoutMailsSummary(t *testing.T) {
	sweeper := &stubSweeper{result: attendance.SweepResult{Date: "2024-03-04", Ran: true, CheckedOut: []string{"EMP001", "EMP007"}}}
	mailer := &recordingMailer{}
	collector := metrics.New()
	svc := New(nil, config.Config{AutoCheckoutNotifyEmail: "rh@example.com; supervisor@example.com", EmailFrom: "reloj@example.com"}, sweeper, mailer, collector)

	result, err := svc.RunAutoCheckout(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.CheckedOut) != 2 || sweeper.calls != 1 {
		t.Fatalf("unexpected result %+v after %d calls", result, sweeper.calls)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one summary email, got %d", len(mailer.sent))
	}
	mail := mailer.sent[0]
	if len(mail.To) != 2 || mail.To[1] != "supervisor@example.com" || mail.From != "reloj@example.com" {
		t.Fatalf("unexpected envelope: %+v", mail)
	}
	if !strings.Contains(mail.Subject, "2024-03-04") || !strings.Contains(mail.Body, "  - EMP007\n") {
		t.Fatalf("unexpected mail: %+v", mail)
	}
	if got := collector.Snapshot()["autoCheckoutsTotal"].(uint64); got != 2 {
		t.Fatalf("expected 2 auto checkouts recorded, got %d", got)
	}
}

func TestRunAutoCheckoutSkipsMailWhenNothingClosed(t *testing.T) {
	sweeper := &stubSweeper{result: attendance.SweepResult{Date: "2024-03-04", Ran: true, CheckedOut: []string{}}}
	mailer := &recordingMailer{}
	svc := New(nil, config.Config{AutoCheckoutNotifyEmail: "rh@example.com"}, sweeper, mailer, metrics.New())

	if _, err := svc.RunAutoCheckout(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("expected no email, got %d", len(mailer.sent))
	}
}

func TestRunAutoCheckoutReturnsSweepError(t *testing.T) {
	boom := errors.New("boom")
	sweeper := &stubSweeper{err: boom}
	svc := New(nil, config.Config{}, sweeper, nil, nil)

	if _, err := svc.RunAutoCheckout(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected sweep error, got %v", err)
	}
}

func TestWorkerRunsQueuedJobs(t *testing.T) {
	svc := New(nil, config.Config{}, &stubSweeper{}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)

	done := make(chan struct{})
	svc.Enqueue("test", func(ctx context.Context) (any, error) {
		close(done)
		return nil, nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("queued job did not run")
	}
}
