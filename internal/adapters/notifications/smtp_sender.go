package notifications

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/google/uuid"
)

// SMTPSender sends email alerts through an SMTP relay with STARTTLS
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender creates an SMTP email sender
func NewSMTPSender(host string, port int, username, password, from string) (*SMTPSender, error) {
	if host == "" || username == "" || password == "" || from == "" {
		return nil, fmt.Errorf("SMTP host, username, password and from address must be set")
	}
	if port == 0 {
		port = 587
	}

	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}, nil
}

// Channel implements providers.AlertSender
func (s *SMTPSender) Channel() string {
	return "email"
}

// Send delivers the alert as a plain-text email. smtp.SendMail negotiates
// STARTTLS when the server offers it.
func (s *SMTPSender) Send(ctx context.Context, recipient, message string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Emergency Alert\r\n\r\n%s\r\n",
		s.from, recipient, message)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	if err := smtp.SendMail(addr, auth, s.from, []string{recipient}, []byte(body)); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	// SMTP has no provider message id; synthesize one for tracing.
	return uuid.NewString(), nil
}
