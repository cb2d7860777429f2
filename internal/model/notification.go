package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Channel is the transport family a notification is delivered through.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelInApp Channel = "in_app"
)

// Category classifies the business event that produced a notification.
type Category string

const (
	CategorySessionReminder  Category = "session_reminder"
	CategoryExamConvocation  Category = "exam_convocation"
	CategoryExamResult       Category = "exam_result"
	CategoryPaymentReceipt   Category = "payment_receipt"
	CategoryPaymentReminder  Category = "payment_reminder"
	CategoryMaintenanceAlert Category = "maintenance_alert"
	CategoryDocumentExpiry   Category = "document_expiry"
	CategoryBirthday         Category = "birthday"
	CategoryGeneral          Category = "general"
)

// Priority orders due notifications: higher values dispatch first.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

// String returns the lowercase name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityUrgent:
		return "urgent"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// ParsePriority converts a priority name into a Priority value.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "low":
		return PriorityLow, nil
	case "normal", "":
		return PriorityNormal, nil
	case "high":
		return PriorityHigh, nil
	case "urgent":
		return PriorityUrgent, nil
	default:
		return PriorityNormal, fmt.Errorf("unknown priority %q", s)
	}
}

// Status is the lifecycle state of a notification.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
	StatusRead      Status = "read"
	StatusCancelled Status = "cancelled"
)

// Notification represents one schedulable, channel-addressed outbound message
// with a tracked delivery lifecycle.
type Notification struct {
	ID       uuid.UUID `json:"id"`
	Channel  Channel   `json:"channel"`
	Category Category  `json:"category"`
	Priority Priority  `json:"priority"`

	// Recipient is a weak reference plus denormalized contact fields captured
	// at creation time, so delivery does not depend on the referenced entity
	// still existing.
	RecipientType  string `json:"recipient_type"`
	RecipientID    string `json:"recipient_id,omitempty"`
	RecipientName  string `json:"recipient_name,omitempty"`
	RecipientEmail string `json:"recipient_email,omitempty"`
	RecipientPhone string `json:"recipient_phone,omitempty"`

	Subject     string `json:"subject,omitempty"` // email only
	Message     string `json:"message"`
	HTMLContent string `json:"html_content,omitempty"`
	Title       string `json:"title,omitempty"`      // in-app only
	Icon        string `json:"icon,omitempty"`       // in-app only
	ActionURL   string `json:"action_url,omitempty"` // in-app only

	Status       Status     `json:"status"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"` // nil means send as soon as picked up
	SentAt       *time.Time `json:"sent_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	RetryCount   int        `json:"retry_count"`
	MaxRetries   int        `json:"max_retries"`

	// ContextData is an opaque JSON payload owned by the producer that created
	// the notification; the core never interprets it.
	ContextData string `json:"context_data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultMaxRetries is applied at creation when the caller does not set a budget.
const DefaultMaxRetries = 3

// RecipientAddress returns the channel-specific recipient field. In-app
// notifications are addressed by recipient id and need no contact field.
func (n *Notification) RecipientAddress() string {
	switch n.Channel {
	case ChannelEmail:
		return n.RecipientEmail
	case ChannelSMS:
		return n.RecipientPhone
	default:
		return n.RecipientID
	}
}

// NeedsRecipientAddress reports whether the channel requires a contact field
// before dispatch may be attempted.
func (n *Notification) NeedsRecipientAddress() bool {
	return n.Channel == ChannelEmail || n.Channel == ChannelSMS
}

// Retryable reports whether a failed notification still has retry budget.
func (n *Notification) Retryable() bool {
	return n.Status == StatusFailed && n.RetryCount < n.MaxRetries
}

// Terminal reports whether no further transition is permitted.
func (n *Notification) Terminal() bool {
	switch n.Status {
	case StatusRead, StatusCancelled:
		return true
	case StatusFailed:
		return n.RetryCount >= n.MaxRetries
	default:
		return false
	}
}

// CanTransition reports whether moving from one status to another is allowed
// for the given channel. READ is reachable only for in-app notifications, and
// nothing ever moves backward from DELIVERED or READ.
func CanTransition(from, to Status, channel Channel) bool {
	switch from {
	case StatusPending:
		switch to {
		case StatusSent, StatusFailed, StatusCancelled:
			return true
		case StatusRead:
			return channel == ChannelInApp
		}
	case StatusSent:
		switch to {
		case StatusDelivered:
			return true
		case StatusRead:
			return channel == ChannelInApp
		}
	case StatusDelivered:
		return to == StatusRead && channel == ChannelInApp
	case StatusFailed:
		// Re-queued for another attempt; the retry budget is checked against
		// retry_count by the store, not here.
		return to == StatusPending
	}

	return false
}
