// Package sender holds the channel sender implementations. Each sender is a
// narrow adapter between a notification and one external transport; retry
// policy stays with the dispatch engine.
package sender

import (
	"context"
	"errors"

	"github.com/drivedesk/notifier/internal/model"
)

// ErrChannelDisabled is returned when a channel's configuration toggle is
// off. It is a deterministic failure, not a silent no-op, so the dispatch
// engine's retry accounting stays meaningful.
var ErrChannelDisabled = errors.New("channel disabled")

// Result carries transport-side metadata of a successful send.
type Result struct {
	ProviderID string // gateway message id, when the transport assigns one
}

// Sender delivers one notification over its channel. A failure is reported
// through the error value and recorded by the engine; senders never panic
// across this boundary.
type Sender interface {
	Send(ctx context.Context, n *model.Notification) (Result, error)
}

// Registry maps each channel to its sender instance, replacing conditional
// branching in the dispatch engine.
type Registry map[model.Channel]Sender

// Resolve returns the sender for a channel.
func (r Registry) Resolve(channel model.Channel) (Sender, bool) {
	s, ok := r[channel]
	return s, ok
}
