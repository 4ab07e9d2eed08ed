package mail

import (
	"testing"

	"school/internal/config"
)

func TestNewSMTPSenderDisabledWithoutHost(t *testing.T) {
	sender := NewSMTPSender(config.Config{SMTPHost: "  "})
	if sender != nil {
		t.Fatal("expected nil sender when no SMTP host is configured")
	}
}

func TestNewSMTPSenderFallsBackToUserAsFrom(t *testing.T) {
	sender := NewSMTPSender(config.Config{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		SMTPUser: "relay@example.com",
	})
	if sender == nil {
		t.Fatal("expected a configured sender")
	}
	if sender.from != "relay@example.com" {
		t.Errorf("expected from to fall back to the SMTP user, got %q", sender.from)
	}
}

func TestNilSenderSendFails(t *testing.T) {
	var sender *SMTPSender
	if err := sender.Send("a@example.com", "s", "b"); err == nil {
		t.Error("expected an error from a nil sender")
	}
}
