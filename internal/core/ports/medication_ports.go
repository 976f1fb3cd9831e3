package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
)

type MedicationRepository interface {
	Save(ctx context.Context, m *domain.Medication) error
	Find(ctx context.Context, userID, id uuid.UUID) (*domain.Medication, error)
	FindAll(ctx context.Context, userID uuid.UUID) ([]*domain.Medication, error)
	Update(ctx context.Context, m *domain.Medication) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type MedicationInput struct {
	MedicationName string
	Dose           string
	Timing         string
}

type MedicationService interface {
	Add(ctx context.Context, userID uuid.UUID, input MedicationInput) (*domain.Medication, error)
	Find(ctx context.Context, userID, id uuid.UUID) (*domain.Medication, error)
	FindAll(ctx context.Context, userID uuid.UUID) ([]*domain.Medication, error)
	Update(ctx context.Context, userID, id uuid.UUID, input MedicationInput) error
	Remove(ctx context.Context, userID, id uuid.UUID) error
}
