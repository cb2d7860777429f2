package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/drivedesk/notifier/internal/model"
)

var (
	ErrValidation           = errors.New("invalid notification")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNoNotificationsFound = errors.New("no notifications found")
	ErrInvalidTransition    = errors.New("invalid status transition")
)

// selectColumns is the column list scanned into model.Notification.
const selectColumns = `
		id, channel, category, priority,
		recipient_type, recipient_id, recipient_name, recipient_email, recipient_phone,
		subject, message, html_content, title, icon, action_url,
		status, scheduled_at, sent_at, delivered_at, read_at,
		error_message, retry_count, max_retries, context_data,
		created_at, updated_at`

// SearchFilter narrows Search results. Zero-valued fields are ignored.
type SearchFilter struct {
	Query    string          // free text over title, message and recipient name
	Category model.Category  // exact match
	Priority *model.Priority // exact match
	Channel  model.Channel   // exact match
	Status   model.Status    // exact match
	Unread   *bool           // true: read_at is null, false: read_at is set
	Limit    int
}

// Repository provides durable CRUD and the query surface over the
// notifications table. It holds no business rules beyond creation validation
// and the status-transition guards baked into its conditional updates.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// validate rejects malformed notifications at the store boundary so they
// never reach the dispatch engine.
func validate(n model.Notification) error {
	if n.Message == "" {
		return fmt.Errorf("%w: message is required", ErrValidation)
	}

	switch n.Channel {
	case model.ChannelEmail:
		if n.RecipientEmail == "" {
			return fmt.Errorf("%w: recipient_email is required for email channel", ErrValidation)
		}
	case model.ChannelSMS:
		if n.RecipientPhone == "" {
			return fmt.Errorf("%w: recipient_phone is required for sms channel", ErrValidation)
		}
	case model.ChannelInApp:
	default:
		return fmt.Errorf("%w: unknown channel %q", ErrValidation, n.Channel)
	}

	return nil
}

// CreateNotification inserts a new notification with status pending and a
// zero retry count, and returns its ID.
func (r *Repository) CreateNotification(ctx context.Context, n model.Notification) (uuid.UUID, error) {
	if err := validate(n); err != nil {
		return uuid.Nil, err
	}

	if n.MaxRetries <= 0 {
		n.MaxRetries = model.DefaultMaxRetries
	}
	if n.Category == "" {
		n.Category = model.CategoryGeneral
	}

	query := `
		INSERT INTO notifications (
		    channel, category, priority,
		    recipient_type, recipient_id, recipient_name, recipient_email, recipient_phone,
		    subject, message, html_content, title, icon, action_url,
		    status, scheduled_at, max_retries, context_data
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 'pending', $15, $16, $17)
		RETURNING id;
    `

	err := r.db.Master.QueryRowContext(
		ctx, query,
		n.Channel, n.Category, n.Priority,
		n.RecipientType, n.RecipientID, n.RecipientName, n.RecipientEmail, n.RecipientPhone,
		n.Subject, n.Message, n.HTMLContent, n.Title, n.Icon, n.ActionURL,
		n.ScheduledAt, n.MaxRetries, n.ContextData,
	).Scan(&n.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return n.ID, nil
}

// GetNotification retrieves a single notification by its ID.
func (r *Repository) GetNotification(ctx context.Context, id uuid.UUID) (model.Notification, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM notifications
		WHERE id = $1;
    `

	n, err := scanNotification(r.db.Master.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Notification{}, ErrNotificationNotFound
		}

		return model.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// ListDue returns pending notifications whose scheduled time is unset or has
// passed, ordered by priority descending then schedule time ascending. The
// ordering is a contract: urgent items dispatch before normal ones regardless
// of arrival order.
func (r *Repository) ListDue(ctx context.Context, now time.Time) ([]model.Notification, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM notifications
		WHERE status = 'pending'
		  AND (scheduled_at IS NULL OR scheduled_at <= $1)
		ORDER BY priority DESC, COALESCE(scheduled_at, created_at) ASC, created_at ASC, seq ASC;
    `

	return r.queryNotifications(ctx, query, now)
}

// ListRetryable returns failed notifications that still have retry budget.
func (r *Repository) ListRetryable(ctx context.Context) ([]model.Notification, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM notifications
		WHERE status = 'failed'
		  AND retry_count < max_retries
		ORDER BY priority DESC, created_at ASC, seq ASC;
    `

	return r.queryNotifications(ctx, query)
}

// ListForRecipient returns unread in-app notifications for a recipient,
// newest first. This feeds the in-application inbox.
func (r *Repository) ListForRecipient(ctx context.Context, recipientType, recipientID string) ([]model.Notification, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM notifications
		WHERE channel = 'in_app'
		  AND recipient_type = $1
		  AND recipient_id = $2
		  AND read_at IS NULL
		  AND status <> 'cancelled'
		ORDER BY created_at DESC;
    `

	rows, err := r.db.QueryContext(ctx, query, recipientType, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipient notifications: %w", err)
	}
	defer rows.Close()

	return collectNotifications(rows)
}

// Search returns notifications matching the filter, newest first. An empty
// result is not an error here: audit consumers treat it as an empty report.
func (r *Repository) Search(ctx context.Context, f SearchFilter) ([]model.Notification, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM notifications
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' OR message ILIKE '%' || $1 || '%' OR recipient_name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR category = $2)
		  AND ($3::int IS NULL OR priority = $3)
		  AND ($4 = '' OR channel = $4)
		  AND ($5 = '' OR status = $5)
		  AND ($6::bool IS NULL OR ($6 AND read_at IS NULL) OR (NOT $6 AND read_at IS NOT NULL))
		ORDER BY created_at DESC
		LIMIT $7;
    `

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}

	var prio sql.NullInt64
	if f.Priority != nil {
		prio = sql.NullInt64{Int64: int64(*f.Priority), Valid: true}
	}

	var unread sql.NullBool
	if f.Unread != nil {
		unread = sql.NullBool{Bool: *f.Unread, Valid: true}
	}

	rows, err := r.db.QueryContext(ctx, query, f.Query, string(f.Category), prio, string(f.Channel), string(f.Status), unread, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search notifications: %w", err)
	}
	defer rows.Close()

	return collectNotifications(rows)
}

// GetAllNotifications retrieves every notification, newest first. This backs
// the bulk export for audit and CSV consumers.
func (r *Repository) GetAllNotifications(ctx context.Context) ([]model.Notification, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM notifications
		ORDER BY created_at DESC;
    `

	notifications, err := r.queryNotifications(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(notifications) == 0 {
		return nil, ErrNoNotificationsFound
	}

	return notifications, nil
}

// MarkSent transitions pending -> sent. The status guard makes the update a
// single atomic claim: a concurrent dispatcher that already claimed the row
// gets ErrInvalidTransition instead of a double send.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET status = 'sent', sent_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'pending';
    `

	return r.execTransition(ctx, query, id)
}

// MarkDelivered transitions sent -> delivered. Used by the dispatch engine
// for channels with no separate delivery confirmation.
func (r *Repository) MarkDelivered(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET status = 'delivered', delivered_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'sent';
    `

	return r.execTransition(ctx, query, id)
}

// MarkFailed transitions pending -> failed, records the failure reason and
// consumes one unit of retry budget. Once retry_count reaches max_retries the
// row is terminal and no further attempt can touch it.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, detail string) error {
	query := `
		UPDATE notifications
		SET status = 'failed', error_message = $2, retry_count = retry_count + 1, updated_at = NOW()
		WHERE id = $1 AND status = 'pending' AND retry_count < max_retries;
    `

	return r.execTransition(ctx, query, id, detail)
}

// ClaimRetry transitions failed -> pending, preserving retry_count and the
// last error message as failure history. It refuses rows whose budget is
// exhausted, so a terminal failure can never re-enter dispatch.
func (r *Repository) ClaimRetry(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET status = 'pending', updated_at = NOW()
		WHERE id = $1 AND status = 'failed' AND retry_count < max_retries;
    `

	return r.execTransition(ctx, query, id)
}

// MarkRead records a user acknowledgement on an in-app notification.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET status = 'read', read_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND channel = 'in_app' AND status IN ('pending', 'sent', 'delivered');
    `

	return r.execTransition(ctx, query, id)
}

// Cancel withdraws a notification that has not been picked up yet.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'pending';
    `

	return r.execTransition(ctx, query, id)
}

// execTransition runs a guarded status update. Zero affected rows means the
// row is missing or the guard rejected the transition; ErrInvalidTransition
// is returned either way and the caller decides whether to log or ignore it.
func (r *Repository) execTransition(ctx context.Context, query string, id uuid.UUID, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, append([]interface{}{id}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrInvalidTransition
	}

	return nil
}

func (r *Repository) queryNotifications(ctx context.Context, query string, args ...interface{}) ([]model.Notification, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	return collectNotifications(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNotification(row rowScanner) (model.Notification, error) {
	var n model.Notification

	err := row.Scan(
		&n.ID, &n.Channel, &n.Category, &n.Priority,
		&n.RecipientType, &n.RecipientID, &n.RecipientName, &n.RecipientEmail, &n.RecipientPhone,
		&n.Subject, &n.Message, &n.HTMLContent, &n.Title, &n.Icon, &n.ActionURL,
		&n.Status, &n.ScheduledAt, &n.SentAt, &n.DeliveredAt, &n.ReadAt,
		&n.ErrorMessage, &n.RetryCount, &n.MaxRetries, &n.ContextData,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return model.Notification{}, err
	}

	return n, nil
}

func collectNotifications(rows *sql.Rows) ([]model.Notification, error) {
	var notifications []model.Notification

	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
