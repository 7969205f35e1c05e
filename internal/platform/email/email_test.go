package email

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/platform/config"
)

func TestNewReturnsNoopWhenDisabled(t *testing.T) {
	mailer := New(config.Config{EmailEnabled: false, SMTPHost: "smtp.example.com"})
	if _, ok := mailer.(noopMailer); !ok {
		t.Fatalf("expected noop mailer, got %T", mailer)
	}
	if err := mailer.Send(context.Background(), Message{From: "a@example.com", To: []string{"b@example.com"}}); err != nil {
		t.Fatalf("noop mailer must not fail: %v", err)
	}
}

func TestRecipients(t *testing.T) {
	got := Recipients(" rh@example.com, ;supervisor@example.com ; ")
	want := []string{"rh@example.com", "supervisor@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := Recipients(""); len(got) != 0 {
		t.Fatalf("expected no recipients, got %v", got)
	}
}

func TestSweepSummary(t *testing.T) {
	result := attendance.SweepResult{Date: "2024-03-04", Ran: true, CheckedOut: []string{"EMP001", "EMP007"}}

	msg, ok := SweepSummary("reloj@example.com", []string{"rh@example.com"}, result)
	if !ok {
		t.Fatal("expected a summary")
	}
	if msg.Subject != "Salidas automáticas 2024-03-04" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if !strings.HasPrefix(msg.Body, "Se registró salida automática para 2 empleado(s) el 2024-03-04:") ||
		!strings.Contains(msg.Body, "  - EMP001\n  - EMP007\n") {
		t.Fatalf("unexpected body %q", msg.Body)
	}

	if _, ok := SweepSummary("reloj@example.com", nil, result); ok {
		t.Fatal("expected no summary without recipients")
	}
	if _, ok := SweepSummary("reloj@example.com", []string{"rh@example.com"}, attendance.SweepResult{Date: "2024-03-04", Ran: true}); ok {
		t.Fatal("expected no summary when nothing was closed")
	}
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage(Message{
		From:    "reloj@example.com",
		To:      []string{"rh@example.com", "supervisor@example.com"},
		Subject: "Salidas automáticas 2024-03-04",
		Body:    "2 empleados\n  - EMP001",
	}))
	for _, want := range []string{
		"From: reloj@example.com\r\n",
		"To: rh@example.com, supervisor@example.com\r\n",
		"Subject: =?UTF-8?q?",
		"charset=\"UTF-8\"",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
	if !strings.HasSuffix(msg, "\r\n\r\n2 empleados\r\n  - EMP001") {
		t.Fatalf("unexpected body framing: %q", msg)
	}
}
