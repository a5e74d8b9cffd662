package dashboard

import (
	"context"
	"time"

	"github.com/odontosys/odontosys/internal/platform/apperr"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 50
)

// PatientCounter and DentistCounter expose the active roster sizes the
// stats snapshot embeds. The patient and dentist repositories satisfy them.
type PatientCounter interface {
	CountActive(ctx context.Context) (int, error)
}

type DentistCounter interface {
	CountActive(ctx context.Context) (int, error)
}

type Service struct {
	repo     Repository
	patients PatientCounter
	dentists DentistCounter
	// now is swappable so tests can pin the clock.
	now func() time.Time
}

func NewService(repo Repository, patients PatientCounter, dentists DentistCounter) *Service {
	return &Service{repo: repo, patients: patients, dentists: dentists, now: time.Now}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.AppointmentStats(ctx, s.now())
	if err != nil {
		return nil, err
	}
	if stats.ActivePatients, err = s.patients.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveDentists, err = s.dentists.CountActive(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) RecentAppointments(ctx context.Context, limit int) ([]*RecentAppointment, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return s.repo.RecentAppointments(ctx, s.now(), limit)
}

func (s *Service) MonthlyCounts(ctx context.Context, year, month int) (map[int]int, error) {
	if month < 1 || month > 12 {
		return nil, apperr.Validation("month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, apperr.Validation("year %d is out of range", year)
	}
	return s.repo.MonthlyCounts(ctx, year, time.Month(month))
}
