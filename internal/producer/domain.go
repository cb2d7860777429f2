package producer

import "time"

// Student is the snapshot of a student record relevant to notifications. The
// producers copy contact fields from it at call time, so later edits to the
// student never affect already-created notifications.
type Student struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`

	// Balance follows the application's "amount owed" sign convention: a
	// positive balance means the student is in debt. The caller guarantees
	// the sign; no absolute value is taken here.
	Balance float64 `json:"balance"`
}

// Session is a scheduled driving session.
type Session struct {
	ID             string    `json:"id"`
	StartAt        time.Time `json:"start_at"`
	Location       string    `json:"location"`
	InstructorName string    `json:"instructor_name"`
}

// Exam is a scheduled driving exam.
type Exam struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"` // "theory" or "practical"
	At       time.Time `json:"at"`
	Location string    `json:"location"`
}

// Vehicle is a school vehicle due for servicing.
type Vehicle struct {
	ID          string `json:"id"`
	Plate       string `json:"plate"`
	Model       string `json:"model"`
	ServiceNote string `json:"service_note"`
	OdometerKm  int    `json:"odometer_km"`
}
