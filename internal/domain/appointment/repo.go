package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	PatientID uuid.UUID
	DentistID uuid.UUID
	Status    string
	// Date restricts results to appointments starting on that calendar day.
	Date time.Time
}

// Repository is the storage contract for appointments. Create and
// SetStatus are atomic: the appointment write and its status-log entry
// either both commit or neither does.
type Repository interface {
	// HasConflict reports whether any non-cancelled appointment for the
	// dentist overlaps [startsAt, endsAt). excludeID is skipped when not
	// uuid.Nil, for the update path.
	HasConflict(ctx context.Context, dentistID uuid.UUID, startsAt, endsAt time.Time, excludeID uuid.UUID) (bool, error)

	// Create inserts the appointment in "scheduled" status together with
	// its initial status-log entry. Returns Conflict when the slot is
	// taken, re-checking inside the same transaction as the insert.
	Create(ctx context.Context, a *Appointment, actorID uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error)

	// Update rewrites the bookable fields. When the dentist or interval
	// changed, it re-checks conflicts excluding the appointment itself.
	Update(ctx context.Context, a *Appointment) error

	// SetStatus updates the status and appends one log entry, even when
	// the new status equals the current one.
	SetStatus(ctx context.Context, id uuid.UUID, status string, actorID uuid.UUID) (*Appointment, error)

	StatusLog(ctx context.Context, appointmentID uuid.UUID) ([]*StatusLog, error)
}
