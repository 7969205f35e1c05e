package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/platform/config"
)

// Message is a plain-text mail to one or more recipients.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Mailer delivers messages. Messages without recipients are dropped.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type noopMailer struct{}

func (noopMailer) Send(ctx context.Context, msg Message) error {
	return nil
}

type smtpMailer struct {
	cfg config.Config
}

func New(cfg config.Config) Mailer {
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return noopMailer{}
	}
	return &smtpMailer{cfg: cfg}
}

// Recipients splits a comma or semicolon separated address list.
func Recipients(list string) []string {
	fields := strings.FieldsFunc(list, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// SweepSummary lists the employees an auto-checkout pass closed, or reports
// false when there is nothing to tell anyone.
func SweepSummary(from string, to []string, result attendance.SweepResult) (Message, bool) {
	if len(to) == 0 || len(result.CheckedOut) == 0 {
		return Message{}, false
	}
	var body strings.Builder
	fmt.Fprintf(&body, "Se registró salida automática para %d empleado(s) el %s:\n\n", len(result.CheckedOut), result.Date)
	for _, id := range result.CheckedOut {
		fmt.Fprintf(&body, "  - %s\n", id)
	}
	return Message{
		From:    from,
		To:      to,
		Subject: fmt.Sprintf("Salidas automáticas %s", result.Date),
		Body:    body.String(),
	}, true
}

func (s *smtpMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return nil
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.cfg.SMTPUseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.SMTPHost}); err != nil {
			return err
		}
	}
	if s.cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(msg.From); err != nil {
		return err
	}
	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt %s: %w", rcpt, err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(buildMessage(msg)); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(msg Message) []byte {
	headers := []string{
		"From: " + msg.From,
		"To: " + strings.Join(msg.To, ", "),
		// Spanish subjects carry accents, so they go out Q-encoded.
		"Subject: " + mime.QEncoding.Encode("UTF-8", msg.Subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
	}
	body := strings.ReplaceAll(msg.Body, "\r\n", "\n")
	return []byte(strings.Join(headers, "\r\n") + "\r\n" + strings.ReplaceAll(body, "\n", "\r\n"))
}
