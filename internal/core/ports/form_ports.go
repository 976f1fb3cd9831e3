package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
)

type FormRepository interface {
	Save(ctx context.Context, form *domain.Form) error
	// FindForm returns the form only when it belongs to userID.
	FindForm(ctx context.Context, userID, formID uuid.UUID) (*domain.Form, error)
	// GetByID ignores ownership; callers must perform their own access check.
	GetByID(ctx context.Context, formID uuid.UUID) (*domain.Form, error)
	FindFormsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Form, error)
	// AppendEvent appends to the log of the form matching (formID, ownerID)
	// and returns domain.ErrFormNotFound when nothing matched.
	AppendEvent(ctx context.Context, formID, ownerID uuid.UUID, event domain.Event) error
}

type CreateFormInput struct {
	UserID      uuid.UUID
	Title       string
	Description *string
	Questions   domain.Questions
}

type SubmitFormInput struct {
	UserID  uuid.UUID
	FormID  uuid.UUID
	Answers domain.Answers
}

type EditQuestionInput struct {
	UserID      uuid.UUID
	FormID      uuid.UUID
	QuestionID  uuid.UUID
	NewQuestion domain.Question
}

type FormService interface {
	Create(ctx context.Context, input CreateFormInput) (*domain.Form, error)
	FindForm(ctx context.Context, userID, formID uuid.UUID) (*domain.Form, error)
	FindFormForCaregiver(ctx context.Context, requesterID, formID uuid.UUID) (*domain.Form, error)
	FindFormsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Form, error)
	Submit(ctx context.Context, input SubmitFormInput) error
	EditQuestion(ctx context.Context, input EditQuestionInput) error
}

type AggregatorService interface {
	ListAllForms(ctx context.Context, userID uuid.UUID) ([]*domain.Form, error)
	SymptomStatus(ctx context.Context, userID uuid.UUID) ([]domain.Symptom, error)
	SubmissionHistory(ctx context.Context, userID uuid.UUID) ([]domain.FormSubmittedWithForm, error)
}
