package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID   `json:"id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	IsPatient    bool        `json:"is_patient"`
	Caregivers   []uuid.UUID `json:"caregivers"`
	CreatedAt    time.Time   `json:"created_at"`
}

// HasCaregiver reports whether id is one of the user's approved caregivers.
func (u *User) HasCaregiver(id uuid.UUID) bool {
	for _, c := range u.Caregivers {
		if c == id {
			return true
		}
	}
	return false
}

type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}
