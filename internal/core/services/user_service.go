package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
)

type UserService struct {
	repo  ports.UserRepository
	links ports.RelationshipRepository
}

func NewUserService(repo ports.UserRepository, links ports.RelationshipRepository) *UserService {
	return &UserService{
		repo:  repo,
		links: links,
	}
}

// GetByID loads the user together with the ids of their caregivers.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	caregivers, err := s.links.ListCaregivers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list caregivers: %w", err)
	}
	user.Caregivers = make([]uuid.UUID, 0, len(caregivers))
	for _, c := range caregivers {
		user.Caregivers = append(user.Caregivers, c.ID)
	}
	return user, nil
}
