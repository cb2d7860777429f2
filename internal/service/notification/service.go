package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/drivedesk/notifier/internal/model"
	"github.com/drivedesk/notifier/internal/repository/notification"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

type notificationRepository interface {
	CreateNotification(context.Context, model.Notification) (uuid.UUID, error)
	GetNotification(context.Context, uuid.UUID) (model.Notification, error)
	ListForRecipient(ctx context.Context, recipientType, recipientID string) ([]model.Notification, error)
	Search(context.Context, notification.SearchFilter) ([]model.Notification, error)
	GetAllNotifications(context.Context) ([]model.Notification, error)
	MarkRead(context.Context, uuid.UUID) error
	Cancel(context.Context, uuid.UUID) error
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// ExportRow is one line of the flat tabular dump consumed by audit and CSV
// tooling outside this service.
type ExportRow struct {
	ID             string     `json:"id"`
	Channel        string     `json:"channel"`
	Category       string     `json:"category"`
	Priority       string     `json:"priority"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	RecipientType  string     `json:"recipient_type"`
	RecipientID    string     `json:"recipient_id"`
	RecipientName  string     `json:"recipient_name"`
	RecipientEmail string     `json:"recipient_email"`
	RecipientPhone string     `json:"recipient_phone"`
	Status         string     `json:"status"`
	Sent           bool       `json:"sent"`
	Read           bool       `json:"read"`
	RetryCount     int        `json:"retry_count"`
	ErrorMessage   string     `json:"error_message"`
	ScheduledAt    *time.Time `json:"scheduled_at"`
	SentAt         *time.Time `json:"sent_at"`
	ReadAt         *time.Time `json:"read_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Service exposes the notification query surface to the rest of the
// application: create, fetch, inbox, search, acknowledgement and export.
// Status lookups go through the redis cache first.
type Service struct {
	repo  notificationRepository
	cache cache
}

// NewService creates a new notification service.
func NewService(repo notificationRepository, cache cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// CreateNotification validates and persists a new pending notification and
// primes the status cache.
func (s *Service) CreateNotification(ctx context.Context, strategy retry.Strategy, n model.Notification) (uuid.UUID, error) {
	id, err := s.repo.CreateNotification(ctx, n)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create notification: %w", err)
	}

	if err := s.cache.SetWithRetry(ctx, strategy, id.String(), string(model.StatusPending)); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification status")
	}

	return id, nil
}

// GetNotification retrieves a notification by its ID.
func (s *Service) GetNotification(ctx context.Context, id uuid.UUID) (model.Notification, error) {
	n, err := s.repo.GetNotification(ctx, id)
	if err != nil {
		return model.Notification{}, fmt.Errorf("get notification: %w", err)
	}

	return n, nil
}

// GetNotificationStatusByID resolves a notification's lifecycle status,
// preferring the cache and falling back to the store on a miss.
func (s *Service) GetNotificationStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (model.Status, error) {
	status, err := s.cache.GetWithRetry(ctx, strategy, id.String())
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get notification status from cache")
	}

	if err != nil {
		n, err := s.repo.GetNotification(ctx, id)
		if err != nil {
			return "", fmt.Errorf("get notification status: %w", err)
		}

		status = string(n.Status)
		if err := s.cache.SetWithRetry(ctx, strategy, id.String(), status); err != nil {
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification status")
		}
	}

	return model.Status(status), nil
}

// Inbox returns the unread in-app notifications for one recipient.
func (s *Service) Inbox(ctx context.Context, recipientType, recipientID string) ([]model.Notification, error) {
	notifications, err := s.repo.ListForRecipient(ctx, recipientType, recipientID)
	if err != nil {
		return nil, fmt.Errorf("list inbox: %w", err)
	}

	return notifications, nil
}

// Search runs a filtered audit query.
func (s *Service) Search(ctx context.Context, filter notification.SearchFilter) ([]model.Notification, error) {
	notifications, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead records a user acknowledgement on an in-app notification and
// refreshes the cached status.
func (s *Service) MarkRead(ctx context.Context, strategy retry.Strategy, id uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	if err := s.cache.SetWithRetry(ctx, strategy, id.String(), string(model.StatusRead)); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification status")
	}

	return nil
}

// Cancel withdraws a still-pending notification.
func (s *Service) Cancel(ctx context.Context, strategy retry.Strategy, id uuid.UUID) error {
	if err := s.repo.Cancel(ctx, id); err != nil {
		return fmt.Errorf("cancel notification: %w", err)
	}

	if err := s.cache.SetWithRetry(ctx, strategy, id.String(), string(model.StatusCancelled)); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification status")
	}

	return nil
}

// Export produces the flat tabular dump of every notification for audit
// consumers.
func (s *Service) Export(ctx context.Context) ([]ExportRow, error) {
	notifications, err := s.repo.GetAllNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("export notifications: %w", err)
	}

	rows := make([]ExportRow, 0, len(notifications))
	for _, n := range notifications {
		rows = append(rows, ExportRow{
			ID:             n.ID.String(),
			Channel:        string(n.Channel),
			Category:       string(n.Category),
			Priority:       n.Priority.String(),
			Title:          n.Title,
			Message:        n.Message,
			RecipientType:  n.RecipientType,
			RecipientID:    n.RecipientID,
			RecipientName:  n.RecipientName,
			RecipientEmail: n.RecipientEmail,
			RecipientPhone: n.RecipientPhone,
			Status:         string(n.Status),
			Sent:           n.SentAt != nil,
			Read:           n.ReadAt != nil,
			RetryCount:     n.RetryCount,
			ErrorMessage:   n.ErrorMessage,
			ScheduledAt:    n.ScheduledAt,
			SentAt:         n.SentAt,
			ReadAt:         n.ReadAt,
			CreatedAt:      n.CreatedAt,
		})
	}

	return rows, nil
}
