package mail

import (
	"fmt"
	"strings"

	"school/internal/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers a plain-text email to a single recipient.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender delivers mail through a configured SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a sender from the SMTP configuration. It returns nil
// when no host is configured; callers treat a nil sender as delivery
// disabled and only record the email log entry.
func NewSMTPSender(cfg config.Config) *SMTPSender {
	host := strings.TrimSpace(cfg.SMTPHost)
	if host == "" {
		return nil
	}
	from := strings.TrimSpace(cfg.SMTPFrom)
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(host, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   from,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	if s == nil || s.dialer == nil {
		return fmt.Errorf("mail: sender not configured")
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}
	return nil
}

var _ Sender = (*SMTPSender)(nil)
