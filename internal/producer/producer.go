// Package producer translates business events of the driving school into
// notification creations. Producers build and enqueue records; they never
// send anything themselves.
package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/drivedesk/notifier/internal/model"
	"github.com/drivedesk/notifier/internal/repository/notification"
)

//go:generate mockgen -source=producer.go -destination=../mocks/producer/mock.go -package=mocks

type notificationCreator interface {
	CreateNotification(context.Context, retry.Strategy, model.Notification) (uuid.UUID, error)
}

// Producer builds notifications from domain events and enqueues them through
// the notification service.
type Producer struct {
	creator  notificationCreator
	strategy retry.Strategy

	now func() time.Time
}

// NewProducer creates a trigger producer.
func NewProducer(creator notificationCreator, strategy retry.Strategy) *Producer {
	return &Producer{
		creator:  creator,
		strategy: strategy,
		now:      time.Now,
	}
}

// SessionReminder creates a reminder per requested channel (default SMS and
// in-app) scheduled leadTime before the session start. A lead window already
// in the past clears the schedule so the reminder goes out on the next pass.
func (p *Producer) SessionReminder(ctx context.Context, student Student, session Session, leadTime time.Duration, channels ...model.Channel) ([]model.Notification, error) {
	if len(channels) == 0 {
		channels = []model.Channel{model.ChannelSMS, model.ChannelInApp}
	}

	var scheduledAt *time.Time
	if at := session.StartAt.Add(-leadTime); at.After(p.now()) {
		scheduledAt = &at
	}

	msg := fmt.Sprintf(
		"Reminder: your driving session is on %s at %s with %s.",
		session.StartAt.Format("Mon 02 Jan 15:04"), session.Location, session.InstructorName,
	)

	base := model.Notification{
		Category:    model.CategorySessionReminder,
		Priority:    model.PriorityNormal,
		Subject:     "Driving session reminder",
		Message:     msg,
		Title:       "Upcoming session",
		Icon:        "calendar",
		ScheduledAt: scheduledAt,
		ContextData: mustContext(map[string]interface{}{
			"session_id": session.ID,
			"student_id": student.ID,
			"start_at":   session.StartAt,
		}),
	}

	return p.createForChannels(ctx, base, student, channels)
}

// ExamConvocation creates an urgent convocation (default email and in-app)
// with no scheduling delay: exams are convoked as soon as confirmed.
func (p *Producer) ExamConvocation(ctx context.Context, student Student, exam Exam, channels ...model.Channel) ([]model.Notification, error) {
	if len(channels) == 0 {
		channels = []model.Channel{model.ChannelEmail, model.ChannelInApp}
	}

	msg := fmt.Sprintf(
		"You are convoked to your %s exam on %s at %s. Please arrive 15 minutes early with your ID.",
		exam.Kind, exam.At.Format("Mon 02 Jan 15:04"), exam.Location,
	)

	base := model.Notification{
		Category: model.CategoryExamConvocation,
		Priority: model.PriorityUrgent,
		Subject:  "Exam convocation",
		Message:  msg,
		Title:    "Exam convocation",
		Icon:     "exam",
		ContextData: mustContext(map[string]interface{}{
			"exam_id":    exam.ID,
			"student_id": student.ID,
			"exam_at":    exam.At,
		}),
	}

	return p.createForChannels(ctx, base, student, channels)
}

// PaymentReminder creates a debt reminder (default SMS and in-app) only when
// the student's balance is in debt. No debt is not an error: the producer
// simply returns an empty list.
func (p *Producer) PaymentReminder(ctx context.Context, student Student, channels ...model.Channel) ([]model.Notification, error) {
	if student.Balance <= 0 {
		return nil, nil
	}

	if len(channels) == 0 {
		channels = []model.Channel{model.ChannelSMS, model.ChannelInApp}
	}

	msg := fmt.Sprintf(
		"Your account shows an outstanding balance of %.2f. Please settle it at the school office or online.",
		student.Balance,
	)

	base := model.Notification{
		Category: model.CategoryPaymentReminder,
		Priority: model.PriorityHigh,
		Subject:  "Payment reminder",
		Message:  msg,
		Title:    "Outstanding balance",
		Icon:     "payment",
		ContextData: mustContext(map[string]interface{}{
			"student_id": student.ID,
			"amount":     student.Balance,
		}),
	}

	return p.createForChannels(ctx, base, student, channels)
}

// MaintenanceAlert creates an in-app notification for the administrators when
// a vehicle needs servicing.
func (p *Producer) MaintenanceAlert(ctx context.Context, vehicle Vehicle) ([]model.Notification, error) {
	msg := fmt.Sprintf("Vehicle %s (%s) is due for servicing", vehicle.Plate, vehicle.Model)
	if vehicle.ServiceNote != "" {
		msg += ": " + vehicle.ServiceNote
	}

	n := model.Notification{
		Channel:       model.ChannelInApp,
		Category:      model.CategoryMaintenanceAlert,
		Priority:      model.PriorityNormal,
		RecipientType: "admin",
		Message:       msg,
		Title:         "Vehicle maintenance",
		Icon:          "wrench",
		ContextData: mustContext(map[string]interface{}{
			"vehicle_id": vehicle.ID,
			"plate":      vehicle.Plate,
		}),
	}

	id, err := p.creator.CreateNotification(ctx, p.strategy, n)
	if err != nil {
		return nil, fmt.Errorf("create maintenance alert: %w", err)
	}

	n.ID = id
	n.Status = model.StatusPending

	return []model.Notification{n}, nil
}

// createForChannels clones the base notification per channel, filling the
// channel-specific recipient fields from the student snapshot. A channel the
// student has no contact for is skipped with a warning; the remaining
// channels still go out.
func (p *Producer) createForChannels(ctx context.Context, base model.Notification, student Student, channels []model.Channel) ([]model.Notification, error) {
	created := make([]model.Notification, 0, len(channels))

	for _, ch := range channels {
		n := base
		n.Channel = ch
		n.RecipientType = "student"
		n.RecipientID = student.ID
		n.RecipientName = student.FullName
		n.RecipientEmail = student.Email
		n.RecipientPhone = student.Phone

		id, err := p.creator.CreateNotification(ctx, p.strategy, n)
		if err != nil {
			if errors.Is(err, notification.ErrValidation) {
				zlog.Logger.Warn().
					Err(err).
					Str("student_id", student.ID).
					Str("channel", string(ch)).
					Msg("skipping channel without recipient contact")
				continue
			}

			return created, fmt.Errorf("create %s notification: %w", ch, err)
		}

		n.ID = id
		n.Status = model.StatusPending
		created = append(created, n)
	}

	return created, nil
}

func mustContext(data map[string]interface{}) string {
	raw, err := json.Marshal(data)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to marshal context data")
		return ""
	}

	return string(raw)
}
