package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
)

type MedicationService struct {
	repo ports.MedicationRepository
	now  func() time.Time
}

func NewMedicationService(repo ports.MedicationRepository) *MedicationService {
	return &MedicationService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func validateMedication(input ports.MedicationInput) error {
	if strings.TrimSpace(input.MedicationName) == "" {
		return fmt.Errorf("%w: medication name is required", domain.ErrInvalidInput)
	}
	return nil
}

func (s *MedicationService) Add(ctx context.Context, userID uuid.UUID, input ports.MedicationInput) (*domain.Medication, error) {
	if err := validateMedication(input); err != nil {
		return nil, err
	}

	m := &domain.Medication{
		ID:             uuid.New(),
		UserID:         userID,
		MedicationName: input.MedicationName,
		Dose:           input.Dose,
		Timing:         input.Timing,
		CreatedAt:      s.now(),
	}
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MedicationService) Find(ctx context.Context, userID, id uuid.UUID) (*domain.Medication, error) {
	return s.repo.Find(ctx, userID, id)
}

func (s *MedicationService) FindAll(ctx context.Context, userID uuid.UUID) ([]*domain.Medication, error) {
	return s.repo.FindAll(ctx, userID)
}

func (s *MedicationService) Update(ctx context.Context, userID, id uuid.UUID, input ports.MedicationInput) error {
	if err := validateMedication(input); err != nil {
		return err
	}

	m, err := s.repo.Find(ctx, userID, id)
	if err != nil {
		return err
	}
	m.MedicationName = input.MedicationName
	m.Dose = input.Dose
	m.Timing = input.Timing
	return s.repo.Update(ctx, m)
}

func (s *MedicationService) Remove(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}
