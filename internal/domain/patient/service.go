package patient

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

func (s *Service) validate(p *Patient) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	if p.Name == "" {
		return apperr.Validation("patient name is required")
	}
	if p.Phone == "" {
		return apperr.Validation("patient phone is required")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q string, active bool, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, q, active, limit, offset)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p *Patient) (*Patient, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = p.Name
	existing.Email = p.Email
	existing.Phone = p.Phone
	existing.BirthDate = p.BirthDate
	existing.Notes = p.Notes
	if err := s.validate(existing); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete soft-deletes the patient. The row survives so that existing
// appointments keep a resolvable reference.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}
