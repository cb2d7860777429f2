package sender

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drivedesk/notifier/internal/model"
	"github.com/drivedesk/notifier/pkg/email"
)

type stubEmailTransport struct {
	sent []email.Message
	err  error
}

func (s *stubEmailTransport) Send(msg email.Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

type stubSMSTransport struct {
	to, text string
	id       string
	err      error
}

func (s *stubSMSTransport) Send(_ context.Context, to, text string) (string, error) {
	s.to = to
	s.text = text
	return s.id, s.err
}

func TestEmailSender(t *testing.T) {
	transport := &stubEmailTransport{}
	s := NewEmailSender(transport, true)

	n := &model.Notification{
		Channel:        model.ChannelEmail,
		RecipientEmail: "marie@example.com",
		Subject:        "Session reminder",
		Message:        "Your session starts tomorrow",
		HTMLContent:    "<p>Your session starts tomorrow</p>",
	}

	res, err := s.Send(context.Background(), n)
	assert.NoError(t, err)
	assert.Empty(t, res.ProviderID)
	assert.Len(t, transport.sent, 1)
	assert.Equal(t, "marie@example.com", transport.sent[0].To)
	assert.Equal(t, "Session reminder", transport.sent[0].Subject)
	assert.Equal(t, "<p>Your session starts tomorrow</p>", transport.sent[0].HTMLBody)
}

func TestEmailSender_TransportError(t *testing.T) {
	transportErr := errors.New("smtp timeout")
	s := NewEmailSender(&stubEmailTransport{err: transportErr}, true)

	_, err := s.Send(context.Background(), &model.Notification{RecipientEmail: "a@example.com", Message: "m"})
	assert.ErrorIs(t, err, transportErr)
}

func TestEmailSender_Disabled(t *testing.T) {
	transport := &stubEmailTransport{}
	s := NewEmailSender(transport, false)

	_, err := s.Send(context.Background(), &model.Notification{RecipientEmail: "a@example.com", Message: "m"})
	assert.ErrorIs(t, err, ErrChannelDisabled)
	assert.Empty(t, transport.sent)
}

func TestSMSSender(t *testing.T) {
	transport := &stubSMSTransport{id: "msg-123"}
	s := NewSMSSender(transport, true)

	n := &model.Notification{
		Channel:        model.ChannelSMS,
		RecipientPhone: "+33612345678",
		Message:        "Exam tomorrow at 09:00",
	}

	res, err := s.Send(context.Background(), n)
	assert.NoError(t, err)
	assert.Equal(t, "msg-123", res.ProviderID)
	assert.Equal(t, "+33612345678", transport.to)
	assert.Equal(t, "Exam tomorrow at 09:00", transport.text)
}

func TestSMSSender_Disabled(t *testing.T) {
	s := NewSMSSender(&stubSMSTransport{}, false)

	_, err := s.Send(context.Background(), &model.Notification{RecipientPhone: "+33612345678", Message: "m"})
	assert.ErrorIs(t, err, ErrChannelDisabled)
}

func TestInAppSender(t *testing.T) {
	s := NewInAppSender()

	res, err := s.Send(context.Background(), &model.Notification{Channel: model.ChannelInApp, Message: "m"})
	assert.NoError(t, err)
	assert.Empty(t, res.ProviderID)
}

func TestRegistryResolve(t *testing.T) {
	reg := Registry{
		model.ChannelInApp: NewInAppSender(),
	}

	s, ok := reg.Resolve(model.ChannelInApp)
	assert.True(t, ok)
	assert.NotNil(t, s)

	_, ok = reg.Resolve(model.ChannelEmail)
	assert.False(t, ok)
}
