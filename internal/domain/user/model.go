package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an API credential holder. PasswordHash never leaves the
// process; the json tag keeps it out of every response.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
