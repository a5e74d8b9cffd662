package dentist

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Dentist) error
	GetByID(ctx context.Context, id uuid.UUID) (*Dentist, error)
	List(ctx context.Context, q, specialty string, active bool, limit, offset int) ([]*Dentist, int, error)
	Update(ctx context.Context, d *Dentist) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	CountActive(ctx context.Context) (int, error)
}
