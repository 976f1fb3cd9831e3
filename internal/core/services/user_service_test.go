package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
)

func TestUserService_GetByID(t *testing.T) {
	users := new(mockUserRepo)
	links := new(mockRelationshipRepo)
	svc := NewUserService(users, links)
	id, c1, c2 := uuid.New(), uuid.New(), uuid.New()

	users.On("GetByID", mock.Anything, id).Return(&domain.User{ID: id, Email: "ana@example.com"}, nil)
	links.On("ListCaregivers", mock.Anything, id).Return([]domain.CaregiverInfo{{ID: c1}, {ID: c2}}, nil)

	user, err := svc.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c1, c2}, user.Caregivers)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewUserService(users, new(mockRelationshipRepo))
	id := uuid.New()
	users.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
