package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	svc      *AuthService
	users    *mockUserRepo
	tokens   *mockAuthRepo
	verifier *mockVerifier
	clock    *clock
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    new(mockUserRepo),
		tokens:   new(mockAuthRepo),
		verifier: new(mockVerifier),
		clock:    newClock(),
	}
	f.svc = NewAuthService(f.users, f.tokens, f.verifier, AuthConfig{JWTSecret: "test-secret", GoogleClientID: "client-id"})
	f.svc.now = f.clock.Now
	return f
}

func userWithPassword(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: string(hash), IsPatient: true}
}

func TestRegister(t *testing.T) {
	f := newAuthFixture()
	f.users.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, nil).Once()
	f.users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, err := f.svc.Register(context.Background(), ports.RegisterInput{
		FirstName: "Ana",
		Email:     "  Ana@Example.com ",
		Password:  "s3cret",
		IsPatient: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.True(t, user.IsPatient)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
	f.users.AssertExpectations(t)
}

func TestRegister_Rejected(t *testing.T) {
	t.Run("missing password", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.svc.Register(context.Background(), ports.RegisterInput{Email: "ana@example.com"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("email in use", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("GetByEmail", mock.Anything, "ana@example.com").Return(&domain.User{ID: uuid.New()}, nil).Once()

		_, err := f.svc.Register(context.Background(), ports.RegisterInput{Email: "ana@example.com", Password: "x"})

		assert.ErrorIs(t, err, domain.ErrEmailInUse)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogin_AuthenticateRoundTrip(t *testing.T) {
	f := newAuthFixture()
	user := userWithPassword(t, "s3cret")
	f.users.On("GetByEmail", mock.Anything, "ana@example.com").Return(user, nil)
	f.tokens.On("StoreRefreshToken", mock.Anything, mock.MatchedBy(func(rt *domain.RefreshToken) bool {
		return rt.UserID == user.ID && rt.ExpiresAt.Equal(f.clock.Now().Add(RefreshTokenTTL))
	})).Return(nil).Once()

	access, refresh, err := f.svc.Login(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, refresh)

	id, err := f.svc.Authenticate(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	f.clock.Advance(AccessTokenTTL + time.Second)
	_, err = f.svc.Authenticate(access)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.users.On("GetByEmail", mock.Anything, "ana@example.com").Return(userWithPassword(t, "s3cret"), nil)

	_, _, err := f.svc.Login(context.Background(), "ana@example.com", "nope")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	f.tokens.AssertNotCalled(t, "StoreRefreshToken", mock.Anything, mock.Anything)
}

func TestAuthenticate_ForeignToken(t *testing.T) {
	f := newAuthFixture()
	other := NewAuthService(f.users, f.tokens, f.verifier, AuthConfig{JWTSecret: "another-secret"})
	other.now = f.clock.Now
	forged, err := other.generateAccessToken(&domain.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = f.svc.Authenticate(forged)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = f.svc.Authenticate("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLoginWithGoogle(t *testing.T) {
	t.Run("first login creates a patient", func(t *testing.T) {
		f := newAuthFixture()
		f.verifier.On("Verify", mock.Anything, "google-token", "client-id").
			Return(&ports.TokenPayload{Email: "Bia@Example.com", FirstName: "Bia"}, nil)
		f.users.On("GetByEmail", mock.Anything, "bia@example.com").Return(nil, nil)
		f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "bia@example.com" && u.FirstName == "Bia" && u.IsPatient
		})).Return(nil).Once()
		f.tokens.On("StoreRefreshToken", mock.Anything, mock.Anything).Return(nil)

		access, refresh, err := f.svc.LoginWithGoogle(context.Background(), "google-token")

		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		f.users.AssertExpectations(t)
	})

	t.Run("invalid google token", func(t *testing.T) {
		f := newAuthFixture()
		f.verifier.On("Verify", mock.Anything, "bad", "client-id").Return(nil, assert.AnError)

		_, _, err := f.svc.LoginWithGoogle(context.Background(), "bad")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestRefreshAccessToken(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "ana@example.com"}

	tests := []struct {
		name    string
		stored  *domain.RefreshToken
		wantErr error
	}{
		{
			name:   "valid",
			stored: &domain.RefreshToken{ID: uuid.New(), UserID: user.ID, ExpiresAt: newClock().Now().Add(time.Hour)},
		},
		{
			name:    "unknown",
			stored:  nil,
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "revoked",
			stored:  &domain.RefreshToken{ID: uuid.New(), UserID: user.ID, ExpiresAt: newClock().Now().Add(time.Hour), Revoked: true},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "expired",
			stored:  &domain.RefreshToken{ID: uuid.New(), UserID: user.ID, ExpiresAt: newClock().Now().Add(-time.Second)},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			f.tokens.On("GetRefreshTokenByHash", mock.Anything, f.svc.hashToken("opaque")).Return(tt.stored, nil)
			f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

			access, refresh, err := f.svc.RefreshAccessToken(context.Background(), "opaque")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "opaque", refresh)
			id, err := f.svc.Authenticate(access)
			require.NoError(t, err)
			assert.Equal(t, user.ID, id)
		})
	}
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	stored := &domain.RefreshToken{ID: uuid.New(), UserID: uuid.New()}
	f.tokens.On("GetRefreshTokenByHash", mock.Anything, f.svc.hashToken("known")).Return(stored, nil)
	f.tokens.On("GetRefreshTokenByHash", mock.Anything, f.svc.hashToken("unknown")).Return(nil, nil)
	f.tokens.On("RevokeRefreshToken", mock.Anything, stored.ID.String()).Return(nil).Once()

	require.NoError(t, f.svc.Logout(context.Background(), "unknown"))
	require.NoError(t, f.svc.Logout(context.Background(), "known"))

	f.tokens.AssertExpectations(t)
}
