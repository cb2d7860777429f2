package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/drivedesk/notifier/internal/model"
	"github.com/drivedesk/notifier/internal/producer"
	"github.com/drivedesk/notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/event/mock.go -package=mocks

type triggerProducer interface {
	SessionReminder(ctx context.Context, student producer.Student, session producer.Session, leadTime time.Duration, channels ...model.Channel) ([]model.Notification, error)
	ExamConvocation(ctx context.Context, student producer.Student, exam producer.Exam, channels ...model.Channel) ([]model.Notification, error)
	PaymentReminder(ctx context.Context, student producer.Student, channels ...model.Channel) ([]model.Notification, error)
	MaintenanceAlert(ctx context.Context, vehicle producer.Vehicle) ([]model.Notification, error)
}

// SessionScheduledPayload carries a booked session and its reminder settings.
type SessionScheduledPayload struct {
	Student   producer.Student `json:"student"`
	Session   producer.Session `json:"session"`
	LeadHours int              `json:"lead_hours"`
	Channels  []model.Channel  `json:"channels,omitempty"`
}

// ExamConfirmedPayload carries a confirmed exam.
type ExamConfirmedPayload struct {
	Student  producer.Student `json:"student"`
	Exam     producer.Exam    `json:"exam"`
	Channels []model.Channel  `json:"channels,omitempty"`
}

// PaymentOverduePayload carries a student whose balance went into debt.
type PaymentOverduePayload struct {
	Student  producer.Student `json:"student"`
	Channels []model.Channel  `json:"channels,omitempty"`
}

// VehicleServicePayload carries a vehicle due for servicing.
type VehicleServicePayload struct {
	Vehicle producer.Vehicle `json:"vehicle"`
}

// Handler routes business events from the record-keeping side of the
// application to the matching trigger producer.
type Handler struct {
	producer triggerProducer
}

// NewHandler creates a business-event handler.
func NewHandler(p triggerProducer) *Handler {
	return &Handler{producer: p}
}

// HandleEvent decodes one event and runs its trigger. Decode and trigger
// failures are logged and swallowed: a malformed event is data to report, not
// a reason to stop consuming.
func (h *Handler) HandleEvent(ctx context.Context, ev queue.Event) {
	var (
		created []model.Notification
		err     error
	)

	switch ev.Type {
	case queue.EventSessionScheduled:
		var p SessionScheduledPayload
		if err = json.Unmarshal(ev.Payload, &p); err == nil {
			lead := time.Duration(p.LeadHours) * time.Hour
			created, err = h.producer.SessionReminder(ctx, p.Student, p.Session, lead, p.Channels...)
		}
	case queue.EventExamConfirmed:
		var p ExamConfirmedPayload
		if err = json.Unmarshal(ev.Payload, &p); err == nil {
			created, err = h.producer.ExamConvocation(ctx, p.Student, p.Exam, p.Channels...)
		}
	case queue.EventPaymentOverdue:
		var p PaymentOverduePayload
		if err = json.Unmarshal(ev.Payload, &p); err == nil {
			created, err = h.producer.PaymentReminder(ctx, p.Student, p.Channels...)
		}
	case queue.EventVehicleService:
		var p VehicleServicePayload
		if err = json.Unmarshal(ev.Payload, &p); err == nil {
			created, err = h.producer.MaintenanceAlert(ctx, p.Vehicle)
		}
	default:
		zlog.Logger.Warn().Str("type", ev.Type).Msg("unknown event type, dropping")
		return
	}

	if err != nil {
		zlog.Logger.Error().Err(err).Str("type", ev.Type).Msg("failed to handle event")
		return
	}

	zlog.Logger.Info().
		Str("type", ev.Type).
		Int("created", len(created)).
		Msg("event handled")
}
