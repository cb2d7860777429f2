package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/drivedesk/notifier/internal/api/respond"
	"github.com/drivedesk/notifier/internal/config"
	"github.com/drivedesk/notifier/internal/model"
	notifrepo "github.com/drivedesk/notifier/internal/repository/notification"
	notifsvc "github.com/drivedesk/notifier/internal/service/notification"
)

// notificationService defines the query surface the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notificationService interface {
	CreateNotification(context.Context, retry.Strategy, model.Notification) (uuid.UUID, error)
	GetNotification(context.Context, uuid.UUID) (model.Notification, error)
	GetNotificationStatusByID(context.Context, retry.Strategy, uuid.UUID) (model.Status, error)
	Inbox(ctx context.Context, recipientType, recipientID string) ([]model.Notification, error)
	Search(context.Context, notifrepo.SearchFilter) ([]model.Notification, error)
	MarkRead(ctx context.Context, strategy retry.Strategy, id uuid.UUID) error
	Cancel(ctx context.Context, strategy retry.Strategy, id uuid.UUID) error
	Export(ctx context.Context) ([]notifsvc.ExportRow, error)
}

// Handler handles HTTP requests related to notifications: creation, lookup,
// inbox, search, acknowledgement, cancellation and export.
type Handler struct {
	service   notificationService
	validator *validator.Validate
	cfg       *config.Config
}

// NewHandler creates a new Handler instance.
func NewHandler(
	s notificationService,
	v *validator.Validate,
	cfg *config.Config,
) *Handler {
	return &Handler{service: s, validator: v, cfg: cfg}
}

// CreateRequest represents the JSON body expected in a notification creation
// request.
type CreateRequest struct {
	Channel        string `json:"channel" validate:"required,oneof=email sms in_app"`
	Category       string `json:"category"`
	Priority       string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	RecipientType  string `json:"recipient_type"`
	RecipientID    string `json:"recipient_id"`
	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email" validate:"omitempty,email"`
	RecipientPhone string `json:"recipient_phone"`
	Subject        string `json:"subject"`
	Message        string `json:"message" validate:"required"`
	HTMLContent    string `json:"html_content"`
	Title          string `json:"title"`
	Icon           string `json:"icon"`
	ActionURL      string `json:"action_url"`
	ScheduledAt    string `json:"scheduled_at"` // RFC 3339; empty means send as soon as picked up
	MaxRetries     int    `json:"max_retries"`
	ContextData    string `json:"context_data"`
}

// Create handles HTTP POST requests to create a new notification.
func (h *Handler) Create(c *ginext.Context) {
	var req CreateRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	priority, err := model.ParsePriority(req.Priority)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	var scheduledAt *time.Time
	if req.ScheduledAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to parse scheduled_at time")
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid scheduled_at format"))
			return
		}
		scheduledAt = &parsed
	}

	notif := model.Notification{
		Channel:        model.Channel(req.Channel),
		Category:       model.Category(req.Category),
		Priority:       priority,
		RecipientType:  req.RecipientType,
		RecipientID:    req.RecipientID,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		RecipientPhone: req.RecipientPhone,
		Subject:        req.Subject,
		Message:        req.Message,
		HTMLContent:    req.HTMLContent,
		Title:          req.Title,
		Icon:           req.Icon,
		ActionURL:      req.ActionURL,
		ScheduledAt:    scheduledAt,
		MaxRetries:     req.MaxRetries,
		ContextData:    req.ContextData,
	}

	id, err := h.service.CreateNotification(c.Request.Context(), h.cfg.Retry, notif)
	if err != nil {
		if errors.Is(err, notifrepo.ErrValidation) {
			zlog.Logger.Warn().Err(err).Msg("rejected invalid notification")
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to create notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, id)
}

// Get handles HTTP GET requests to retrieve a full notification record.
func (h *Handler) Get(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	notif, err := h.service.GetNotification(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, notifrepo.ErrNotificationNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, notif)
}

// GetStatus handles HTTP GET requests to retrieve the status of a notification.
func (h *Handler) GetStatus(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	status, err := h.service.GetNotificationStatusByID(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, notifrepo.ErrNotificationNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get notification status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, status)
}

// Inbox handles HTTP GET requests for a recipient's unread in-app
// notifications.
func (h *Handler) Inbox(c *ginext.Context) {
	recipientType := c.Param("recipient_type")
	recipientID := c.Param("recipient_id")

	if recipientType == "" || recipientID == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing recipient"))
		return
	}

	notifications, err := h.service.Inbox(c.Request.Context(), recipientType, recipientID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("recipient_id", recipientID).Msg("failed to list inbox")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, notifications)
}

// Search handles HTTP GET requests over the audit query surface. Filters come
// from query parameters; all are optional.
func (h *Handler) Search(c *ginext.Context) {
	filter := notifrepo.SearchFilter{
		Query:    c.Query("q"),
		Category: model.Category(c.Query("category")),
		Channel:  model.Channel(c.Query("channel")),
		Status:   model.Status(c.Query("status")),
	}

	if p := c.Query("priority"); p != "" {
		priority, err := model.ParsePriority(p)
		if err != nil {
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}
		filter.Priority = &priority
	}

	if u := c.Query("unread"); u != "" {
		unread := u == "true" || u == "1"
		filter.Unread = &unread
	}

	notifications, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to search notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, notifications)
}

// MarkRead handles HTTP POST requests acknowledging an in-app notification.
func (h *Handler) MarkRead(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	err := h.service.MarkRead(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, notifrepo.ErrInvalidTransition) {
			respond.Fail(c.Writer, http.StatusConflict, fmt.Errorf("notification cannot be marked read"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to mark notification read")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "notification read")
}

// Cancel handles HTTP DELETE requests withdrawing a still-pending
// notification.
func (h *Handler) Cancel(c *ginext.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	err := h.service.Cancel(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, notifrepo.ErrInvalidTransition) {
			respond.Fail(c.Writer, http.StatusConflict, fmt.Errorf("notification is no longer pending"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cancel notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "notification cancelled")
}

// Export handles HTTP GET requests producing the flat audit dump.
func (h *Handler) Export(c *ginext.Context) {
	rows, err := h.service.Export(c.Request.Context())
	if err != nil {
		if errors.Is(err, notifrepo.ErrNoNotificationsFound) {
			respond.OK(c.Writer, []notifsvc.ExportRow{})
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to export notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, rows)
}

func (h *Handler) parseID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return uuid.Nil, false
	}

	return id, true
}
