package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// CaregiverTokenLength is the number of characters in an invitation token.
	CaregiverTokenLength = 10
	// CaregiverTokenValidity is how long an invitation can be redeemed after it is minted.
	CaregiverTokenValidity = 72 * time.Hour
)

// CaregiverToken is a single-use invitation a patient hands to a prospective caregiver.
type CaregiverToken struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresBy time.Time `json:"expires_by"`
}

func NewCaregiverToken(token string, owner uuid.UUID, now time.Time) *CaregiverToken {
	return &CaregiverToken{
		Token:     token,
		UserID:    owner,
		CreatedAt: now,
		ExpiresBy: now.Add(CaregiverTokenValidity),
	}
}

// Expired reports whether the token can no longer be redeemed at now.
func (t *CaregiverToken) Expired(now time.Time) bool {
	return t.ExpiresBy.Before(now)
}

// CaregiverInfo is the public summary of a linked account.
type CaregiverInfo struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}
