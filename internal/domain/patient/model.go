package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a clinic patient. Active is the soft-delete marker; rows are
// never physically removed once appointments reference them.
type Patient struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
