package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
)

type authFunc func(string) (uuid.UUID, error)

func (f authFunc) Authenticate(token string) (uuid.UUID, error) { return f(token) }

// acceptAs authenticates the literal token "valid" as id.
func acceptAs(id uuid.UUID) authFunc {
	return func(token string) (uuid.UUID, error) {
		if token != "valid" {
			return uuid.Nil, domain.ErrUnauthenticated
		}
		return id, nil
	}
}

type mockCaregiverService struct{ mock.Mock }

func (m *mockCaregiverService) Mint(ctx context.Context, ownerID uuid.UUID) (*domain.CaregiverToken, error) {
	args := m.Called(ctx, ownerID)
	t, _ := args.Get(0).(*domain.CaregiverToken)
	return t, args.Error(1)
}

func (m *mockCaregiverService) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCaregiverService) Redeem(ctx context.Context, token string) (*domain.CaregiverToken, error) {
	args := m.Called(ctx, token)
	t, _ := args.Get(0).(*domain.CaregiverToken)
	return t, args.Error(1)
}

func (m *mockCaregiverService) RedeemInvitation(ctx context.Context, redeemerID uuid.UUID, token string) error {
	return m.Called(ctx, redeemerID, token).Error(0)
}

func (m *mockCaregiverService) RemoveCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) error {
	return m.Called(ctx, patientID, caregiverID).Error(0)
}

func (m *mockCaregiverService) ListCaregivers(ctx context.Context, patientID uuid.UUID) ([]domain.CaregiverInfo, error) {
	args := m.Called(ctx, patientID)
	infos, _ := args.Get(0).([]domain.CaregiverInfo)
	return infos, args.Error(1)
}

func (m *mockCaregiverService) ListPatients(ctx context.Context, caregiverID uuid.UUID) ([]domain.CaregiverInfo, error) {
	args := m.Called(ctx, caregiverID)
	infos, _ := args.Get(0).([]domain.CaregiverInfo)
	return infos, args.Error(1)
}

type mockFormService struct{ mock.Mock }

func (m *mockFormService) Create(ctx context.Context, input ports.CreateFormInput) (*domain.Form, error) {
	args := m.Called(ctx, input)
	f, _ := args.Get(0).(*domain.Form)
	return f, args.Error(1)
}

func (m *mockFormService) FindForm(ctx context.Context, userID, formID uuid.UUID) (*domain.Form, error) {
	args := m.Called(ctx, userID, formID)
	f, _ := args.Get(0).(*domain.Form)
	return f, args.Error(1)
}

func (m *mockFormService) FindFormForCaregiver(ctx context.Context, requesterID, formID uuid.UUID) (*domain.Form, error) {
	args := m.Called(ctx, requesterID, formID)
	f, _ := args.Get(0).(*domain.Form)
	return f, args.Error(1)
}

func (m *mockFormService) FindFormsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Form, error) {
	args := m.Called(ctx, userID)
	forms, _ := args.Get(0).([]*domain.Form)
	return forms, args.Error(1)
}

func (m *mockFormService) Submit(ctx context.Context, input ports.SubmitFormInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *mockFormService) EditQuestion(ctx context.Context, input ports.EditQuestionInput) error {
	return m.Called(ctx, input).Error(0)
}

type mockAggregator struct{ mock.Mock }

func (m *mockAggregator) ListAllForms(ctx context.Context, userID uuid.UUID) ([]*domain.Form, error) {
	args := m.Called(ctx, userID)
	forms, _ := args.Get(0).([]*domain.Form)
	return forms, args.Error(1)
}

func (m *mockAggregator) SymptomStatus(ctx context.Context, userID uuid.UUID) ([]domain.Symptom, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).([]domain.Symptom)
	return s, args.Error(1)
}

func (m *mockAggregator) SubmissionHistory(ctx context.Context, userID uuid.UUID) ([]domain.FormSubmittedWithForm, error) {
	args := m.Called(ctx, userID)
	h, _ := args.Get(0).([]domain.FormSubmittedWithForm)
	return h, args.Error(1)
}

type testServer struct {
	handler    http.Handler
	caregivers *mockCaregiverService
	forms      *mockFormService
	aggregator *mockAggregator
	logs       *logrustest.Hook
}

func newTestServer(userID uuid.UUID) *testServer {
	log, hook := logrustest.NewNullLogger()
	s := &testServer{
		caregivers: new(mockCaregiverService),
		forms:      new(mockFormService),
		aggregator: new(mockAggregator),
		logs:       hook,
	}
	s.handler = NewHandler(Handlers{
		Caregiver: NewCaregiverHandler(s.caregivers, log),
		Form:      NewFormHandler(s.forms, s.aggregator, log),
		Health:    NewHealthHandler(func(context.Context) error { return errors.New("connection refused") }, log),
	}, acceptAs(userID), []string{"*"}, log)
	return s
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "valid"})
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New()
	s := newTestServer(userID)
	s.caregivers.On("ListCaregivers", mock.Anything, userID).Return([]domain.CaregiverInfo{}, nil)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{name: "no token", setup: func(*http.Request) {}, status: http.StatusUnauthorized},
		{
			name:   "invalid cookie",
			setup:  func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: "forged"}) },
			status: http.StatusUnauthorized,
		},
		{
			name:   "valid cookie",
			setup:  func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: "valid"}) },
			status: http.StatusOK,
		},
		{
			name:   "valid bearer header",
			setup:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer valid") },
			status: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/caregivers/list", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			s.handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCaregiverHandler_Generate(t *testing.T) {
	userID := uuid.New()
	s := newTestServer(userID)
	s.caregivers.On("Mint", mock.Anything, userID).Return(&domain.CaregiverToken{Token: "abc123xyz0", UserID: userID}, nil)

	rec := s.do(http.MethodPost, "/api/caregivers/generate", "")

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "abc123xyz0", body["created_token"])
}

func TestCaregiverHandler_Add(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "linked", err: nil, status: http.StatusNoContent},
		{name: "unknown or expired token", err: domain.ErrTokenNotFound, status: http.StatusNotFound},
		{name: "own token", err: domain.ErrSelfCaregiver, status: http.StatusBadRequest},
		{name: "storage failure", err: fmt.Errorf("%w: failed to take token: boom", domain.ErrStorage), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := uuid.New()
			s := newTestServer(userID)
			s.caregivers.On("RedeemInvitation", mock.Anything, userID, "abc123xyz0").Return(tt.err)

			rec := s.do(http.MethodPost, "/api/caregivers/add/abc123xyz0", "")

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "boom")
				var logged bool
				for _, e := range s.logs.AllEntries() {
					logged = logged || e.Message == "request failed"
				}
				assert.True(t, logged, "internal failures must be logged")
			}
		})
	}
}

func TestCaregiverHandler_Remove_BadID(t *testing.T) {
	s := newTestServer(uuid.New())

	rec := s.do(http.MethodDelete, "/api/caregivers/remove/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	s.caregivers.AssertNotCalled(t, "RemoveCaregiver", mock.Anything, mock.Anything, mock.Anything)
}

func TestFormHandler_Create(t *testing.T) {
	userID := uuid.New()
	s := newTestServer(userID)
	created := &domain.Form{ID: uuid.New(), UserID: userID}
	s.forms.On("Create", mock.Anything, mock.MatchedBy(func(in ports.CreateFormInput) bool {
		return in.UserID == userID && in.Title == "Headache" && len(in.Questions) == 1
	})).Return(created, nil)

	body := `{"title":"Headache","questions":[{"kind":"slider","slider":{"title":"Intensity","low":0,"high":10,"step":1}}]}`
	rec := s.do(http.MethodPost, "/api/forms/", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]uuid.UUID
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, created.ID, resp["created_id"])
}

func TestFormHandler_Create_Invalid(t *testing.T) {
	s := newTestServer(uuid.New())

	for _, body := range []string{`{"title":""}`, `not json`, `{"title":"x","questions":[{"kind":"drawing"}]}`} {
		rec := s.do(http.MethodPost, "/api/forms/", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	s.forms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFormHandler_Submit(t *testing.T) {
	formID := uuid.New()
	body := fmt.Sprintf(`{"answers":[{"kind":"free_form","free_form":{"question_id":"%s","text":"tired"}}]}`, uuid.New())

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "accepted", err: nil, status: http.StatusCreated},
		{name: "form not owned", err: domain.ErrFormNotFound, status: http.StatusBadRequest},
		{name: "invalid answers", err: domain.ErrInvalidAnswer, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := uuid.New()
			s := newTestServer(userID)
			s.forms.On("Submit", mock.Anything, mock.MatchedBy(func(in ports.SubmitFormInput) bool {
				return in.UserID == userID && in.FormID == formID && len(in.Answers) == 1
			})).Return(tt.err)

			rec := s.do(http.MethodPost, "/api/forms/"+formID.String()+"/submit", body)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestFormHandler_Symptoms(t *testing.T) {
	userID := uuid.New()
	s := newTestServer(userID)
	s.aggregator.On("SymptomStatus", mock.Anything, userID).Return([]domain.Symptom{
		{ID: uuid.New(), Title: "Pain", Status: "2 hours ago", RecentlyCompleted: true},
	}, nil)

	rec := s.do(http.MethodGet, "/api/forms/symptoms", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.Symptom
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.True(t, got[0].RecentlyCompleted)
}

func TestFormHandler_GetShared_Forbidden(t *testing.T) {
	userID, formID := uuid.New(), uuid.New()
	s := newTestServer(userID)
	s.forms.On("FindFormForCaregiver", mock.Anything, userID, formID).Return(nil, domain.ErrFormNotFound)

	rec := s.do(http.MethodGet, "/api/forms/"+formID.String()+"/shared", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthHandler_Unavailable(t *testing.T) {
	s := newTestServer(uuid.New())

	rec := s.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unavailable")
}
