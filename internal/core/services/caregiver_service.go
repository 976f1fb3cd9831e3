package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
)

const (
	tokenAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
	maxMintAttempts = 5
)

type CaregiverService struct {
	tokens   ports.CaregiverTokenRepository
	links    ports.RelationshipRepository
	log      logrus.FieldLogger
	now      func() time.Time
	newToken func() (string, error)
}

func NewCaregiverService(tokens ports.CaregiverTokenRepository, links ports.RelationshipRepository, log logrus.FieldLogger) *CaregiverService {
	return &CaregiverService{
		tokens:   tokens,
		links:    links,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		newToken: generateToken,
	}
}

func generateToken() (string, error) {
	b := make([]byte, domain.CaregiverTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = tokenAlphabet[int(b[i])%len(tokenAlphabet)]
	}
	return string(b), nil
}

// Mint creates a new invitation for ownerID. A patient may hold any number of live tokens.
func (s *CaregiverService) Mint(ctx context.Context, ownerID uuid.UUID) (*domain.CaregiverToken, error) {
	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		value, err := s.newToken()
		if err != nil {
			return nil, fmt.Errorf("failed to generate caregiver token: %w", err)
		}

		token := domain.NewCaregiverToken(value, ownerID, s.now())
		err = s.tokens.Insert(ctx, token)
		if errors.Is(err, domain.ErrTokenCollision) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return token, nil
	}
	return nil, fmt.Errorf("%w: no unique caregiver token after %d attempts", domain.ErrStorage, maxMintAttempts)
}

func (s *CaregiverService) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := s.tokens.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	s.log.WithField("deleted", deleted).Info("deleted expired caregiver tokens")
	return deleted, nil
}

// Redeem consumes token. Expired tokens are never returned, even if they were not purged yet.
func (s *CaregiverService) Redeem(ctx context.Context, token string) (*domain.CaregiverToken, error) {
	if token == "" {
		return nil, domain.ErrTokenNotFound
	}
	return s.tokens.Take(ctx, token, s.now())
}

// RedeemInvitation links redeemerID as a caregiver of the token's owner.
// The token is consumed even when the link is rejected.
func (s *CaregiverService) RedeemInvitation(ctx context.Context, redeemerID uuid.UUID, token string) error {
	if _, err := s.PurgeExpired(ctx); err != nil {
		return err
	}

	found, err := s.Redeem(ctx, token)
	if err != nil {
		return err
	}

	if found.UserID == redeemerID {
		return domain.ErrSelfCaregiver
	}

	if err := s.links.AddCaregiver(ctx, found.UserID, redeemerID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"patient_id":   found.UserID,
		"caregiver_id": redeemerID,
	}).Info("caregiver added")
	return nil
}

func (s *CaregiverService) RemoveCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) error {
	return s.links.RemoveCaregiver(ctx, patientID, caregiverID)
}

func (s *CaregiverService) ListCaregivers(ctx context.Context, patientID uuid.UUID) ([]domain.CaregiverInfo, error) {
	return s.links.ListCaregivers(ctx, patientID)
}

func (s *CaregiverService) ListPatients(ctx context.Context, caregiverID uuid.UUID) ([]domain.CaregiverInfo, error) {
	return s.links.ListPatients(ctx, caregiverID)
}
