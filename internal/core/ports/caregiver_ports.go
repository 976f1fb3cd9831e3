package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
)

type CaregiverTokenRepository interface {
	// Insert fails with domain.ErrTokenCollision when the token string is already taken.
	Insert(ctx context.Context, token *domain.CaregiverToken) error
	// DeleteExpired removes every token whose expires_by is before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	// Take atomically finds and deletes an unexpired token.
	Take(ctx context.Context, token string, now time.Time) (*domain.CaregiverToken, error)
}

type RelationshipRepository interface {
	// AddCaregiver is a set union: adding an existing caregiver is a no-op.
	AddCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) error
	RemoveCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) error
	ListCaregivers(ctx context.Context, patientID uuid.UUID) ([]domain.CaregiverInfo, error)
	// ListPatients is the reverse lookup: every user listing caregiverID as caregiver.
	ListPatients(ctx context.Context, caregiverID uuid.UUID) ([]domain.CaregiverInfo, error)
	IsCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) (bool, error)
}

type CaregiverService interface {
	Mint(ctx context.Context, ownerID uuid.UUID) (*domain.CaregiverToken, error)
	PurgeExpired(ctx context.Context) (int64, error)
	Redeem(ctx context.Context, token string) (*domain.CaregiverToken, error)
	RedeemInvitation(ctx context.Context, redeemerID uuid.UUID, token string) error
	RemoveCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) error
	ListCaregivers(ctx context.Context, patientID uuid.UUID) ([]domain.CaregiverInfo, error)
	ListPatients(ctx context.Context, caregiverID uuid.UUID) ([]domain.CaregiverInfo, error)
}
