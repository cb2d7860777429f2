package trigger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/drivedesk/notifier/internal/api/respond"
	"github.com/drivedesk/notifier/internal/model"
	"github.com/drivedesk/notifier/internal/producer"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/trigger/mock.go -package=mocks
type triggerProducer interface {
	SessionReminder(ctx context.Context, student producer.Student, session producer.Session, leadTime time.Duration, channels ...model.Channel) ([]model.Notification, error)
	ExamConvocation(ctx context.Context, student producer.Student, exam producer.Exam, channels ...model.Channel) ([]model.Notification, error)
	PaymentReminder(ctx context.Context, student producer.Student, channels ...model.Channel) ([]model.Notification, error)
	MaintenanceAlert(ctx context.Context, vehicle producer.Vehicle) ([]model.Notification, error)
}

// Handler exposes the trigger producers over HTTP so the record-keeping
// controllers can fire them directly alongside the broker intake.
type Handler struct {
	producer  triggerProducer
	validator *validator.Validate
}

// NewHandler creates a trigger handler.
func NewHandler(p triggerProducer, v *validator.Validate) *Handler {
	return &Handler{producer: p, validator: v}
}

// SessionReminderRequest carries a booked session and its reminder settings.
type SessionReminderRequest struct {
	Student   producer.Student `json:"student" validate:"required"`
	Session   producer.Session `json:"session" validate:"required"`
	LeadHours int              `json:"lead_hours"`
	Channels  []model.Channel  `json:"channels"`
}

// SessionReminder handles HTTP POST requests creating session reminders.
func (h *Handler) SessionReminder(c *ginext.Context) {
	var req SessionReminderRequest
	if !h.decode(c, &req) {
		return
	}

	lead := time.Duration(req.LeadHours) * time.Hour
	created, err := h.producer.SessionReminder(c.Request.Context(), req.Student, req.Session, lead, req.Channels...)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("session_id", req.Session.ID).Msg("failed to create session reminders")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, created)
}

// ExamConvocationRequest carries a confirmed exam.
type ExamConvocationRequest struct {
	Student  producer.Student `json:"student" validate:"required"`
	Exam     producer.Exam    `json:"exam" validate:"required"`
	Channels []model.Channel  `json:"channels"`
}

// ExamConvocation handles HTTP POST requests creating exam convocations.
func (h *Handler) ExamConvocation(c *ginext.Context) {
	var req ExamConvocationRequest
	if !h.decode(c, &req) {
		return
	}

	created, err := h.producer.ExamConvocation(c.Request.Context(), req.Student, req.Exam, req.Channels...)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("exam_id", req.Exam.ID).Msg("failed to create exam convocations")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, created)
}

// PaymentReminderRequest carries a student balance snapshot.
type PaymentReminderRequest struct {
	Student  producer.Student `json:"student" validate:"required"`
	Channels []model.Channel  `json:"channels"`
}

// PaymentReminder handles HTTP POST requests creating debt reminders. A
// student without debt yields an empty list, not an error.
func (h *Handler) PaymentReminder(c *ginext.Context) {
	var req PaymentReminderRequest
	if !h.decode(c, &req) {
		return
	}

	created, err := h.producer.PaymentReminder(c.Request.Context(), req.Student, req.Channels...)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("student_id", req.Student.ID).Msg("failed to create payment reminders")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, created)
}

// MaintenanceAlertRequest carries a vehicle due for servicing.
type MaintenanceAlertRequest struct {
	Vehicle producer.Vehicle `json:"vehicle" validate:"required"`
}

// MaintenanceAlert handles HTTP POST requests creating maintenance alerts.
func (h *Handler) MaintenanceAlert(c *ginext.Context) {
	var req MaintenanceAlertRequest
	if !h.decode(c, &req) {
		return
	}

	created, err := h.producer.MaintenanceAlert(c.Request.Context(), req.Vehicle)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("vehicle_id", req.Vehicle.ID).Msg("failed to create maintenance alert")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, created)
}

func (h *Handler) decode(c *ginext.Context, req interface{}) bool {
	if err := json.NewDecoder(c.Request.Body).Decode(req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return false
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return false
	}

	return true
}
