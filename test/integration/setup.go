package integration

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/vncsmyrnk/pulse/internal/adapters/handler/http"
	repo "github.com/vncsmyrnk/pulse/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
	"github.com/vncsmyrnk/pulse/internal/core/services"
)

const (
	jwtSecret   = "test-secret"
	redirectURL = "https://example.com/redirect"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

// MockVerifier accepts the literal token "valid_token" as the configured email.
type MockVerifier struct {
	email string
}

func (v *MockVerifier) Verify(ctx context.Context, token string, clientID string) (*ports.TokenPayload, error) {
	if token == "valid_token" {
		return &ports.TokenPayload{Email: v.email, FirstName: "Google", LastName: "User"}, nil
	}
	return nil, assert.AnError
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := repo.Open(ctx, dbURL)
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(ctx, db))

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	userRepo := repo.NewUserRepository(db)
	links := repo.NewRelationshipRepository(db)
	forms := repo.NewFormRepository(db)

	authSvc := services.NewAuthService(userRepo, repo.NewAuthRepository(db), &MockVerifier{email: "google@example.com"}, services.AuthConfig{
		JWTSecret:      jwtSecret,
		GoogleClientID: "test-client",
	})
	caregiverSvc := services.NewCaregiverService(repo.NewCaregiverTokenRepository(db), links, log)

	router := handler.NewHandler(handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc, log, redirectURL, "", http.SameSiteLaxMode),
		User:       handler.NewUserHandler(services.NewUserService(userRepo, links), log),
		Caregiver:  handler.NewCaregiverHandler(caregiverSvc, log),
		Form:       handler.NewFormHandler(services.NewFormService(forms, links), services.NewAggregatorService(forms, links), log),
		Medication: handler.NewMedicationHandler(services.NewMedicationService(repo.NewMedicationRepository(db)), log),
		Health:     handler.NewHealthHandler(db.PingContext, log),
	}, authSvc, []string{"*"}, log)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// testUser is a registered account with a signed access token.
type testUser struct {
	ID    uuid.UUID
	Email string
	Token string
}

func (app *TestApp) createUserAndToken(t *testing.T) testUser {
	t.Helper()

	userID := uuid.New()
	email := fmt.Sprintf("user-%s@example.com", userID)
	_, err := app.DB.Exec(
		"INSERT INTO users (id, first_name, last_name, email) VALUES ($1, $2, $3, $4)",
		userID, "User", userID.String()[:8], email,
	)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return testUser{ID: userID, Email: email, Token: signedToken}
}

// do sends an authenticated request and returns the response with its body unread.
func (app *TestApp) do(t *testing.T, u testUser, method, path string, body []byte) *http.Response {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: u.Token})

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
