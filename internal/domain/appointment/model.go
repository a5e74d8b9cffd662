package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. No transition graph is enforced; any status may
// follow any other, and every change lands in the status log.
const (
	StatusScheduled  = "scheduled"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var validStatuses = map[string]bool{
	StatusScheduled:  true,
	StatusConfirmed:  true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

func ValidStatus(s string) bool { return validStatuses[s] }

// Appointment books a dentist for the half-open interval
// [StartsAt, EndsAt). For a given dentist, non-cancelled appointments
// never overlap.
type Appointment struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	DentistID uuid.UUID `json:"dentist_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusLog is one immutable entry in an appointment's audit trail.
// Every status change appends exactly one entry, including the initial
// "scheduled" entry written at creation.
type StatusLog struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	Status        string    `json:"status"`
	ActorID       uuid.UUID `json:"actor_id"`
	CreatedAt     time.Time `json:"created_at"`
}
