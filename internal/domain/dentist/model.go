package dentist

import (
	"time"

	"github.com/google/uuid"
)

// Dentist is a practitioner on the clinic's roster. LicenseNumber is
// unique across all rows, active or not.
type Dentist struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"license_number"`
	Specialty     string    `json:"specialty,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
