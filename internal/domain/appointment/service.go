package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/odontosys/odontosys/internal/domain/dentist"
	"github.com/odontosys/odontosys/internal/domain/patient"
	"github.com/odontosys/odontosys/internal/platform/apperr"
)

// PatientDirectory resolves active patients. Satisfied by the patient
// repository.
type PatientDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// DentistDirectory resolves active dentists. Satisfied by the dentist
// repository.
type DentistDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*dentist.Dentist, error)
}

type Service struct {
	repo     Repository
	patients PatientDirectory
	dentists DentistDirectory
}

func NewService(repo Repository, patients PatientDirectory, dentists DentistDirectory) *Service {
	return &Service{repo: repo, patients: patients, dentists: dentists}
}

func validateInterval(startsAt, endsAt time.Time) error {
	if startsAt.IsZero() || endsAt.IsZero() {
		return apperr.Validation("starts_at and ends_at are required")
	}
	if !endsAt.After(startsAt) {
		return apperr.Validation("ends_at must be after starts_at")
	}
	return nil
}

// Create books an appointment in "scheduled" status. The referenced
// patient and dentist must exist and be active, and the dentist's
// calendar must be free for the whole interval.
func (s *Service) Create(ctx context.Context, a *Appointment, actorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return apperr.Unauthorized("acting user could not be resolved")
	}
	if a.PatientID == uuid.Nil || a.DentistID == uuid.Nil {
		return apperr.Validation("patient_id and dentist_id are required")
	}
	if err := validateInterval(a.StartsAt, a.EndsAt); err != nil {
		return err
	}

	if _, err := s.patients.GetByID(ctx, a.PatientID); err != nil {
		return err
	}
	if _, err := s.dentists.GetByID(ctx, a.DentistID); err != nil {
		return err
	}

	return s.repo.Create(ctx, a, actorID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// UpdateInput carries the mutable appointment fields. Nil pointers leave
// the stored value untouched.
type UpdateInput struct {
	PatientID *uuid.UUID `json:"patient_id"`
	DentistID *uuid.UUID `json:"dentist_id"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	Notes     *string    `json:"notes"`
}

// Update applies a partial update. Changing the dentist or the interval
// re-runs the conflict check, excluding the appointment itself.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.PatientID != nil {
		if _, err := s.patients.GetByID(ctx, *in.PatientID); err != nil {
			return nil, err
		}
		a.PatientID = *in.PatientID
	}
	if in.DentistID != nil {
		if _, err := s.dentists.GetByID(ctx, *in.DentistID); err != nil {
			return nil, err
		}
		a.DentistID = *in.DentistID
	}
	if in.StartsAt != nil {
		a.StartsAt = *in.StartsAt
	}
	if in.EndsAt != nil {
		a.EndsAt = *in.EndsAt
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}

	if err := validateInterval(a.StartsAt, a.EndsAt); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// SetStatus records a status change. Any status in the allowed set is
// accepted from any prior status; each call appends one log entry.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string, actorID uuid.UUID) (*Appointment, error) {
	if actorID == uuid.Nil {
		return nil, apperr.Unauthorized("acting user could not be resolved")
	}
	if !ValidStatus(status) {
		return nil, apperr.Validation("invalid status %q", status)
	}
	return s.repo.SetStatus(ctx, id, status, actorID)
}

// Cancel marks the appointment cancelled. The row stays in place and its
// slot immediately becomes bookable again.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*Appointment, error) {
	return s.SetStatus(ctx, id, StatusCancelled, actorID)
}

func (s *Service) StatusLog(ctx context.Context, id uuid.UUID) ([]*StatusLog, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.StatusLog(ctx, id)
}
