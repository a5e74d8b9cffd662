package dentist

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/odontosys/odontosys/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) validate(d *Dentist) error {
	d.Name = strings.TrimSpace(d.Name)
	d.LicenseNumber = strings.TrimSpace(d.LicenseNumber)
	if d.Name == "" {
		return apperr.Validation("dentist name is required")
	}
	if d.LicenseNumber == "" {
		return apperr.Validation("license number is required")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, d *Dentist) error {
	if err := s.validate(d); err != nil {
		return err
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Dentist, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q, specialty string, active bool, limit, offset int) ([]*Dentist, int, error) {
	return s.repo.List(ctx, q, specialty, active, limit, offset)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, d *Dentist) (*Dentist, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = d.Name
	existing.LicenseNumber = d.LicenseNumber
	existing.Specialty = d.Specialty
	existing.Email = d.Email
	existing.Phone = d.Phone
	if err := s.validate(existing); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}
