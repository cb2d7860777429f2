package notification

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"

	"github.com/drivedesk/notifier/internal/model"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

var notificationColumns = []string{
	"id", "channel", "category", "priority",
	"recipient_type", "recipient_id", "recipient_name", "recipient_email", "recipient_phone",
	"subject", "message", "html_content", "title", "icon", "action_url",
	"status", "scheduled_at", "sent_at", "delivered_at", "read_at",
	"error_message", "retry_count", "max_retries", "context_data",
	"created_at", "updated_at",
}

func addNotificationRow(rows *sqlmock.Rows, n model.Notification) *sqlmock.Rows {
	return rows.AddRow(
		n.ID, n.Channel, n.Category, n.Priority,
		n.RecipientType, n.RecipientID, n.RecipientName, n.RecipientEmail, n.RecipientPhone,
		n.Subject, n.Message, n.HTMLContent, n.Title, n.Icon, n.ActionURL,
		n.Status, n.ScheduledAt, n.SentAt, n.DeliveredAt, n.ReadAt,
		n.ErrorMessage, n.RetryCount, n.MaxRetries, n.ContextData,
		n.CreatedAt, n.UpdatedAt,
	)
}

func TestCreateNotification(t *testing.T) {
	repo, mock := setupMockDB(t)

	notificationID := uuid.New()
	n := model.Notification{
		Channel:        model.ChannelEmail,
		Category:       model.CategorySessionReminder,
		Priority:       model.PriorityNormal,
		RecipientType:  "student",
		RecipientID:    "42",
		RecipientName:  "Marie Dupont",
		RecipientEmail: "marie@example.com",
		Subject:        "Upcoming session",
		Message:        "Your driving session starts tomorrow at 10:00",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO notifications (
		    channel, category, priority,
		    recipient_type, recipient_id, recipient_name, recipient_email, recipient_phone,
		    subject, message, html_content, title, icon, action_url,
		    status, scheduled_at, max_retries, context_data
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 'pending', $15, $16, $17)
		RETURNING id;
    `)).
		WithArgs(
			n.Channel, n.Category, n.Priority,
			n.RecipientType, n.RecipientID, n.RecipientName, n.RecipientEmail, n.RecipientPhone,
			n.Subject, n.Message, n.HTMLContent, n.Title, n.Icon, n.ActionURL,
			n.ScheduledAt, model.DefaultMaxRetries, n.ContextData,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(notificationID))

	id, err := repo.CreateNotification(context.Background(), n)
	assert.NoError(t, err)
	assert.Equal(t, notificationID, id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNotification_Validation(t *testing.T) {
	repo, _ := setupMockDB(t)
	ctx := context.Background()

	tests := []struct {
		name string
		n    model.Notification
	}{
		{
			name: "missing message",
			n:    model.Notification{Channel: model.ChannelInApp, RecipientType: "student", RecipientID: "42"},
		},
		{
			name: "email without recipient_email",
			n:    model.Notification{Channel: model.ChannelEmail, Message: "hello"},
		},
		{
			name: "sms without recipient_phone",
			n:    model.Notification{Channel: model.ChannelSMS, Message: "hello"},
		},
		{
			name: "unknown channel",
			n:    model.Notification{Channel: "pigeon", Message: "hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := repo.CreateNotification(ctx, tt.n)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, uuid.Nil, id)
		})
	}
}

func TestGetNotification(t *testing.T) {
	repo, mock := setupMockDB(t)

	n := model.Notification{
		ID:            uuid.New(),
		Channel:       model.ChannelInApp,
		Category:      model.CategoryGeneral,
		Priority:      model.PriorityNormal,
		RecipientType: "student",
		RecipientID:   "42",
		Message:       "Welcome",
		Status:        model.StatusPending,
		MaxRetries:    3,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs(n.ID).
		WillReturnRows(addNotificationRow(sqlmock.NewRows(notificationColumns), n))

	got, err := repo.GetNotification(context.Background(), n.ID)
	assert.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, n.Message, got.Message)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())

	missing := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs(missing).
		WillReturnRows(sqlmock.NewRows(notificationColumns))

	_, err = repo.GetNotification(context.Background(), missing)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDue(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()
	urgent := model.Notification{
		ID:            uuid.New(),
		Channel:       model.ChannelSMS,
		Category:      model.CategoryExamConvocation,
		Priority:      model.PriorityUrgent,
		RecipientType: "student",
		RecipientPhone: "+33612345678",
		Message:       "Exam convocation",
		Status:        model.StatusPending,
		MaxRetries:    3,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	normal := model.Notification{
		ID:            uuid.New(),
		Channel:       model.ChannelInApp,
		Category:      model.CategorySessionReminder,
		Priority:      model.PriorityNormal,
		RecipientType: "student",
		RecipientID:   "7",
		Message:       "Session reminder",
		Status:        model.StatusPending,
		MaxRetries:    3,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	rows := sqlmock.NewRows(notificationColumns)
	addNotificationRow(rows, urgent)
	addNotificationRow(rows, normal)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = 'pending'
		  AND (scheduled_at IS NULL OR scheduled_at <= $1)
		ORDER BY priority DESC, COALESCE(scheduled_at, created_at) ASC, created_at ASC, seq ASC;`)).
		WithArgs(now).
		WillReturnRows(rows)

	list, err := repo.ListDue(context.Background(), now)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, urgent.ID, list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRetryable(t *testing.T) {
	repo, mock := setupMockDB(t)

	failed := model.Notification{
		ID:             uuid.New(),
		Channel:        model.ChannelEmail,
		Category:       model.CategoryPaymentReminder,
		Priority:       model.PriorityHigh,
		RecipientType:  "student",
		RecipientEmail: "a@example.com",
		Message:        "Payment overdue",
		Status:         model.StatusFailed,
		ErrorMessage:   "smtp timeout",
		RetryCount:     1,
		MaxRetries:     3,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = 'failed'
		  AND retry_count < max_retries`)).
		WillReturnRows(addNotificationRow(sqlmock.NewRows(notificationColumns), failed))

	list, err := repo.ListRetryable(context.Background())
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, failed.ID, list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSent(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notifications
		SET status = 'sent', sent_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'pending';
    `)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkSent(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// A concurrent dispatcher already claimed the row.
	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notifications
		SET status = 'sent', sent_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'pending';
    `)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.MarkSent(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFailed(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	detail := "provider rejected the message"

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notifications
		SET status = 'failed', error_message = $2, retry_count = retry_count + 1, updated_at = NOW()
		WHERE id = $1 AND status = 'pending' AND retry_count < max_retries;
    `)).
		WithArgs(id, detail).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkFailed(context.Background(), id, detail)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// Retry budget exhausted: the guard refuses the update.
	mock.ExpectExec(regexp.QuoteMeta(`retry_count < max_retries;`)).
		WithArgs(id, detail).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.MarkFailed(context.Background(), id, detail)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRetry(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notifications
		SET status = 'pending', updated_at = NOW()
		WHERE id = $1 AND status = 'failed' AND retry_count < max_retries;
    `)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ClaimRetry(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec(regexp.QuoteMeta(`status = 'failed' AND retry_count < max_retries;`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.ClaimRetry(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRead(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notifications
		SET status = 'read', read_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND channel = 'in_app' AND status IN ('pending', 'sent', 'delivered');
    `)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkRead(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// Not an in-app notification, or already read/cancelled.
	mock.ExpectExec(regexp.QuoteMeta(`channel = 'in_app'`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.MarkRead(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notifications
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'pending';
    `)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec(regexp.QuoteMeta(`status = 'pending';`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Cancel(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllNotifications(t *testing.T) {
	repo, mock := setupMockDB(t)

	n := model.Notification{
		ID:            uuid.New(),
		Channel:       model.ChannelInApp,
		Category:      model.CategoryGeneral,
		RecipientType: "student",
		RecipientID:   "42",
		Message:       "msg",
		Status:        model.StatusDelivered,
		MaxRetries:    3,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM notifications
		ORDER BY created_at DESC;`)).
		WillReturnRows(addNotificationRow(sqlmock.NewRows(notificationColumns), n))

	list, err := repo.GetAllNotifications(context.Background())
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(regexp.QuoteMeta(`FROM notifications
		ORDER BY created_at DESC;`)).
		WillReturnRows(sqlmock.NewRows(notificationColumns))

	_, err = repo.GetAllNotifications(context.Background())
	assert.ErrorIs(t, err, ErrNoNotificationsFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch(t *testing.T) {
	repo, mock := setupMockDB(t)

	prio := model.PriorityHigh
	unread := true
	f := SearchFilter{
		Query:    "exam",
		Category: model.CategoryExamConvocation,
		Priority: &prio,
		Channel:  model.ChannelInApp,
		Status:   model.StatusDelivered,
		Unread:   &unread,
		Limit:    10,
	}

	n := model.Notification{
		ID:            uuid.New(),
		Channel:       model.ChannelInApp,
		Category:      model.CategoryExamConvocation,
		Priority:      model.PriorityHigh,
		RecipientType: "student",
		RecipientID:   "42",
		Title:         "Exam",
		Message:       "Exam convocation",
		Status:        model.StatusDelivered,
		MaxRetries:    3,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC
		LIMIT $7;`)).
		WithArgs(f.Query, string(f.Category), sqlmock.AnyArg(), string(f.Channel), string(f.Status), sqlmock.AnyArg(), f.Limit).
		WillReturnRows(addNotificationRow(sqlmock.NewRows(notificationColumns), n))

	list, err := repo.Search(context.Background(), f)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, n.ID, list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())

	// Empty filter falls back to the default limit; an empty result is fine.
	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $7;`)).
		WithArgs("", "", sqlmock.AnyArg(), "", "", sqlmock.AnyArg(), 100).
		WillReturnRows(sqlmock.NewRows(notificationColumns))

	list, err = repo.Search(context.Background(), SearchFilter{})
	assert.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListForRecipient(t *testing.T) {
	repo, mock := setupMockDB(t)

	n := model.Notification{
		ID:            uuid.New(),
		Channel:       model.ChannelInApp,
		Category:      model.CategorySessionReminder,
		RecipientType: "student",
		RecipientID:   "42",
		Title:         "Reminder",
		Message:       "Session tomorrow",
		Status:        model.StatusDelivered,
		MaxRetries:    3,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE channel = 'in_app'
		  AND recipient_type = $1
		  AND recipient_id = $2
		  AND read_at IS NULL
		  AND status <> 'cancelled'`)).
		WithArgs("student", "42").
		WillReturnRows(addNotificationRow(sqlmock.NewRows(notificationColumns), n))

	list, err := repo.ListForRecipient(context.Background(), "student", "42")
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, n.ID, list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
