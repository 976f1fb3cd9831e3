package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
)

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) Insert(ctx context.Context, token *domain.CaregiverToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTokenRepo) Take(ctx context.Context, token string, now time.Time) (*domain.CaregiverToken, error) {
	args := m.Called(ctx, token, now)
	t, _ := args.Get(0).(*domain.CaregiverToken)
	return t, args.Error(1)
}

type mockRelationshipRepo struct{ mock.Mock }

func (m *mockRelationshipRepo) AddCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) error {
	return m.Called(ctx, patientID, caregiverID).Error(0)
}

func (m *mockRelationshipRepo) RemoveCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) error {
	return m.Called(ctx, patientID, caregiverID).Error(0)
}

func (m *mockRelationshipRepo) ListCaregivers(ctx context.Context, patientID uuid.UUID) ([]domain.CaregiverInfo, error) {
	args := m.Called(ctx, patientID)
	infos, _ := args.Get(0).([]domain.CaregiverInfo)
	return infos, args.Error(1)
}

func (m *mockRelationshipRepo) ListPatients(ctx context.Context, caregiverID uuid.UUID) ([]domain.CaregiverInfo, error) {
	args := m.Called(ctx, caregiverID)
	infos, _ := args.Get(0).([]domain.CaregiverInfo)
	return infos, args.Error(1)
}

func (m *mockRelationshipRepo) IsCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) (bool, error) {
	args := m.Called(ctx, patientID, caregiverID)
	return args.Bool(0), args.Error(1)
}

type mockFormRepo struct{ mock.Mock }

func (m *mockFormRepo) Save(ctx context.Context, form *domain.Form) error {
	return m.Called(ctx, form).Error(0)
}

func (m *mockFormRepo) FindForm(ctx context.Context, userID, formID uuid.UUID) (*domain.Form, error) {
	args := m.Called(ctx, userID, formID)
	f, _ := args.Get(0).(*domain.Form)
	return f, args.Error(1)
}

func (m *mockFormRepo) GetByID(ctx context.Context, formID uuid.UUID) (*domain.Form, error) {
	args := m.Called(ctx, formID)
	f, _ := args.Get(0).(*domain.Form)
	return f, args.Error(1)
}

func (m *mockFormRepo) FindFormsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Form, error) {
	args := m.Called(ctx, userID)
	forms, _ := args.Get(0).([]*domain.Form)
	return forms, args.Error(1)
}

func (m *mockFormRepo) AppendEvent(ctx context.Context, formID, ownerID uuid.UUID, event domain.Event) error {
	return m.Called(ctx, formID, ownerID, event).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockAuthRepo struct{ mock.Mock }

func (m *mockAuthRepo) StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockAuthRepo) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	t, _ := args.Get(0).(*domain.RefreshToken)
	return t, args.Error(1)
}

func (m *mockAuthRepo) RevokeRefreshToken(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) Verify(ctx context.Context, token string, clientID string) (*ports.TokenPayload, error) {
	args := m.Called(ctx, token, clientID)
	p, _ := args.Get(0).(*ports.TokenPayload)
	return p, args.Error(1)
}

type mockMedicationRepo struct{ mock.Mock }

func (m *mockMedicationRepo) Save(ctx context.Context, med *domain.Medication) error {
	return m.Called(ctx, med).Error(0)
}

func (m *mockMedicationRepo) Find(ctx context.Context, userID, id uuid.UUID) (*domain.Medication, error) {
	args := m.Called(ctx, userID, id)
	med, _ := args.Get(0).(*domain.Medication)
	return med, args.Error(1)
}

func (m *mockMedicationRepo) FindAll(ctx context.Context, userID uuid.UUID) ([]*domain.Medication, error) {
	args := m.Called(ctx, userID)
	meds, _ := args.Get(0).([]*domain.Medication)
	return meds, args.Error(1)
}

func (m *mockMedicationRepo) Update(ctx context.Context, med *domain.Medication) error {
	return m.Called(ctx, med).Error(0)
}

func (m *mockMedicationRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}
