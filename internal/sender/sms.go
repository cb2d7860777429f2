package sender

import (
	"context"

	"github.com/drivedesk/notifier/internal/model"
)

// smsTransport abstracts the gateway client for tests.
type smsTransport interface {
	Send(ctx context.Context, to, text string) (string, error)
}

// SMSSender delivers notifications through the external SMS gateway. Number
// normalization and length truncation happen in the gateway client.
type SMSSender struct {
	client  smsTransport
	enabled bool
}

var _ Sender = (*SMSSender)(nil)

// NewSMSSender creates the SMS channel sender.
func NewSMSSender(client smsTransport, enabled bool) *SMSSender {
	return &SMSSender{client: client, enabled: enabled}
}

// Send submits the message body to the gateway and reports the provider
// message id on success.
func (s *SMSSender) Send(ctx context.Context, n *model.Notification) (Result, error) {
	if !s.enabled {
		return Result{}, ErrChannelDisabled
	}

	providerID, err := s.client.Send(ctx, n.RecipientPhone, n.Message)
	if err != nil {
		return Result{}, err
	}

	return Result{ProviderID: providerID}, nil
}
