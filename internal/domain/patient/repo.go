package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the storage contract for patients. GetByID sees only
// active rows; List filters on the soft-delete flag explicitly so
// deactivated patients stay reachable; Deactivate flips the flag.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	List(ctx context.Context, q string, active bool, limit, offset int) ([]*Patient, int, error)
	Update(ctx context.Context, p *Patient) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	CountActive(ctx context.Context) (int, error)
}
