package sender

import (
	"context"

	"github.com/drivedesk/notifier/internal/model"
)

// InAppSender is the in-application channel. It has no external transport:
// "sending" only makes the record visible through the query surface, so its
// send always succeeds and the channel cannot be disabled.
type InAppSender struct{}

var _ Sender = (*InAppSender)(nil)

// NewInAppSender creates the in-app channel sender.
func NewInAppSender() *InAppSender {
	return &InAppSender{}
}

// Send is a trivial, always-successful transport.
func (s *InAppSender) Send(context.Context, *model.Notification) (Result, error) {
	return Result{}, nil
}
