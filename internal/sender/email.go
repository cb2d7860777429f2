package sender

import (
	"context"

	"github.com/drivedesk/notifier/internal/model"
	"github.com/drivedesk/notifier/pkg/email"
)

// emailTransport abstracts the SMTP client for tests.
type emailTransport interface {
	Send(msg email.Message) error
}

// EmailSender delivers notifications through an authenticated SMTP relay.
type EmailSender struct {
	client  emailTransport
	enabled bool
}

var _ Sender = (*EmailSender)(nil)

// NewEmailSender creates the email channel sender. When enabled is false
// every send fails immediately with ErrChannelDisabled.
func NewEmailSender(client emailTransport, enabled bool) *EmailSender {
	return &EmailSender{client: client, enabled: enabled}
}

// Send composes a message from the notification's subject, plain body and
// optional HTML body, and hands it to the relay.
func (s *EmailSender) Send(_ context.Context, n *model.Notification) (Result, error) {
	if !s.enabled {
		return Result{}, ErrChannelDisabled
	}

	msg := email.Message{
		To:       n.RecipientEmail,
		Subject:  n.Subject,
		Body:     n.Message,
		HTMLBody: n.HTMLContent,
	}

	if err := s.client.Send(msg); err != nil {
		return Result{}, err
	}

	return Result{}, nil
}
