// Package dispatch moves pending notifications toward sent or failed. It is
// the only place that drives the delivery state machine forward; senders know
// nothing about retry policy and producers know nothing about transports.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/drivedesk/notifier/internal/model"
	"github.com/drivedesk/notifier/internal/repository/notification"
	"github.com/drivedesk/notifier/internal/sender"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/dispatch/mock.go -package=mocks

type dispatchRepository interface {
	ListDue(ctx context.Context, now time.Time) ([]model.Notification, error)
	ListRetryable(ctx context.Context) ([]model.Notification, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkDelivered(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, detail string) error
	ClaimRetry(ctx context.Context, id uuid.UUID) error
}

// Stats aggregates the outcome of one dispatch pass.
type Stats struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// Service is the dispatch engine. ProcessPending and RetryFailed are
// synchronous, re-entrant and idempotent per call; the caller owns the clock
// and any background scheduling.
type Service struct {
	repo    dispatchRepository
	senders sender.Registry

	// inflight guards against overlapping passes in the same process sending
	// the same notification twice; cross-process overlap is handled by the
	// store's optimistic transitions.
	inflight sync.Map

	now func() time.Time
}

// NewService creates a dispatch engine over the given store and senders.
func NewService(repo dispatchRepository, senders sender.Registry) *Service {
	return &Service{
		repo:    repo,
		senders: senders,
		now:     time.Now,
	}
}

// ProcessPending fetches every due notification and attempts delivery in
// returned order. A failure of one notification never aborts the batch.
func (s *Service) ProcessPending(ctx context.Context) (Stats, error) {
	due, err := s.repo.ListDue(ctx, s.now())
	if err != nil {
		return Stats{}, fmt.Errorf("list due notifications: %w", err)
	}

	var stats Stats
	for i := range due {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		s.dispatchOne(ctx, &due[i], &stats)
	}

	return stats, nil
}

// RetryFailed re-submits failed notifications that still have retry budget
// through the same per-notification path as ProcessPending, updating the
// same records rather than creating new ones. A notification that exhausts
// its budget is left failed permanently.
func (s *Service) RetryFailed(ctx context.Context) (Stats, error) {
	retryable, err := s.repo.ListRetryable(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("list retryable notifications: %w", err)
	}

	var stats Stats
	for i := range retryable {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		n := &retryable[i]

		// Claim the row back to pending before attempting. A concurrent
		// sweep that claimed it first simply wins.
		if err := s.repo.ClaimRetry(ctx, n.ID); err != nil {
			if !errors.Is(err, notification.ErrInvalidTransition) {
				zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to claim notification for retry")
			}
			continue
		}

		s.dispatchOne(ctx, n, &stats)
	}

	return stats, nil
}

// dispatchOne attempts delivery of a single notification and applies the
// outcome to the store. Every sender outcome is data: transport errors are
// recorded in error_message and counted against the retry budget.
func (s *Service) dispatchOne(ctx context.Context, n *model.Notification, stats *Stats) {
	if _, loaded := s.inflight.LoadOrStore(n.ID, struct{}{}); loaded {
		zlog.Logger.Warn().Str("id", n.ID.String()).Msg("notification already in flight, skipping")
		return
	}
	defer s.inflight.Delete(n.ID)

	stats.Total++

	// A missing channel-specific recipient field will never self-correct, so
	// it is an immediate failure that still consumes retry budget.
	if n.NeedsRecipientAddress() && n.RecipientAddress() == "" {
		s.fail(ctx, n, fmt.Sprintf("missing recipient address for channel %s", n.Channel), stats)
		return
	}

	snd, ok := s.senders.Resolve(n.Channel)
	if !ok {
		s.fail(ctx, n, fmt.Sprintf("no sender registered for channel %s", n.Channel), stats)
		return
	}

	res, err := snd.Send(ctx, n)
	if err != nil {
		s.fail(ctx, n, err.Error(), stats)
		return
	}

	if err := s.repo.MarkSent(ctx, n.ID); err != nil {
		if errors.Is(err, notification.ErrInvalidTransition) {
			// Claimed by a concurrent pass; its outcome stands.
			zlog.Logger.Warn().Str("id", n.ID.String()).Msg("notification claimed elsewhere, skipping")
			stats.Total--
			return
		}

		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to mark notification sent")
		stats.Failed++
		return
	}

	// SMS and in-app have no separate delivery confirmation step.
	if n.Channel == model.ChannelSMS || n.Channel == model.ChannelInApp {
		if err := s.repo.MarkDelivered(ctx, n.ID); err != nil {
			zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to mark notification delivered")
		}
	}

	if res.ProviderID != "" {
		zlog.Logger.Info().
			Str("id", n.ID.String()).
			Str("provider_id", res.ProviderID).
			Msg("notification accepted by provider")
	}

	stats.Success++
}

func (s *Service) fail(ctx context.Context, n *model.Notification, detail string, stats *Stats) {
	zlog.Logger.Warn().
		Str("id", n.ID.String()).
		Str("channel", string(n.Channel)).
		Str("detail", detail).
		Msg("notification send failed")

	if err := s.repo.MarkFailed(ctx, n.ID, detail); err != nil {
		if errors.Is(err, notification.ErrInvalidTransition) {
			zlog.Logger.Warn().Str("id", n.ID.String()).Msg("notification claimed elsewhere, skipping")
			stats.Total--
			return
		}

		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to mark notification failed")
	}

	stats.Failed++
}
