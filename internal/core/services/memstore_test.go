package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
)

// memTokenStore mirrors the atomic find-and-delete contract of the real stores.
type memTokenStore struct {
	mu     sync.Mutex
	tokens map[string]domain.CaregiverToken
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: map[string]domain.CaregiverToken{}}
}

func (s *memTokenStore) Insert(_ context.Context, token *domain.CaregiverToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[token.Token]; ok {
		return domain.ErrTokenCollision
	}
	s.tokens[token.Token] = *token
	return nil
}

func (s *memTokenStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, t := range s.tokens {
		if t.ExpiresBy.Before(now) {
			delete(s.tokens, k)
			n++
		}
	}
	return n, nil
}

func (s *memTokenStore) Take(_ context.Context, token string, now time.Time) (*domain.CaregiverToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	if !ok || t.Expired(now) {
		return nil, domain.ErrTokenNotFound
	}
	delete(s.tokens, token)
	return &t, nil
}

type memLinks struct {
	mu         sync.Mutex
	caregivers map[uuid.UUID][]uuid.UUID
}

func newMemLinks() *memLinks {
	return &memLinks{caregivers: map[uuid.UUID][]uuid.UUID{}}
}

func (l *memLinks) AddCaregiver(_ context.Context, patientID, caregiverID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !slices.Contains(l.caregivers[patientID], caregiverID) {
		l.caregivers[patientID] = append(l.caregivers[patientID], caregiverID)
	}
	return nil
}

func (l *memLinks) RemoveCaregiver(_ context.Context, patientID, caregiverID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.caregivers[patientID] = slices.DeleteFunc(l.caregivers[patientID], func(id uuid.UUID) bool { return id == caregiverID })
	return nil
}

func (l *memLinks) ListCaregivers(_ context.Context, patientID uuid.UUID) ([]domain.CaregiverInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	infos := []domain.CaregiverInfo{}
	for _, id := range l.caregivers[patientID] {
		infos = append(infos, domain.CaregiverInfo{ID: id})
	}
	return infos, nil
}

func (l *memLinks) ListPatients(_ context.Context, caregiverID uuid.UUID) ([]domain.CaregiverInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	infos := []domain.CaregiverInfo{}
	for patient, caregivers := range l.caregivers {
		if slices.Contains(caregivers, caregiverID) {
			infos = append(infos, domain.CaregiverInfo{ID: patient})
		}
	}
	return infos, nil
}

func (l *memLinks) IsCaregiver(_ context.Context, patientID, caregiverID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Contains(l.caregivers[patientID], caregiverID), nil
}
