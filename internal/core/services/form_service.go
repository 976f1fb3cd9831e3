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

type FormService struct {
	forms ports.FormRepository
	links ports.RelationshipRepository
	now   func() time.Time
}

func NewFormService(forms ports.FormRepository, links ports.RelationshipRepository) *FormService {
	return &FormService{
		forms: forms,
		links: links,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *FormService) Create(ctx context.Context, input ports.CreateFormInput) (*domain.Form, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	input.Questions.AssignIDs()
	form := &domain.Form{
		ID:          uuid.New(),
		UserID:      input.UserID,
		CreatedBy:   input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Questions:   input.Questions,
		Events:      domain.Events{},
		CreatedAt:   s.now(),
	}
	if form.Questions == nil {
		form.Questions = domain.Questions{}
	}

	if err := s.forms.Save(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *FormService) FindForm(ctx context.Context, userID, formID uuid.UUID) (*domain.Form, error) {
	return s.forms.FindForm(ctx, userID, formID)
}

// FindFormForCaregiver returns the form when requesterID owns it or cares for its owner.
// Both "missing" and "forbidden" are reported as domain.ErrFormNotFound.
func (s *FormService) FindFormForCaregiver(ctx context.Context, requesterID, formID uuid.UUID) (*domain.Form, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.UserID == requesterID {
		return form, nil
	}

	ok, err := s.links.IsCaregiver(ctx, form.UserID, requesterID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrFormNotFound
	}
	return form, nil
}

func (s *FormService) FindFormsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Form, error) {
	return s.forms.FindFormsForUser(ctx, userID)
}

func (s *FormService) Submit(ctx context.Context, input ports.SubmitFormInput) error {
	form, err := s.forms.FindForm(ctx, input.UserID, input.FormID)
	if err != nil {
		return err
	}
	if err := form.ValidateAnswers(input.Answers); err != nil {
		return err
	}

	answers := input.Answers
	if answers == nil {
		answers = domain.Answers{}
	}
	event := &domain.FormSubmitted{
		Answers:     answers,
		SubmittedBy: input.UserID,
		SubmittedAt: s.now(),
	}
	return s.forms.AppendEvent(ctx, input.FormID, input.UserID, event)
}

// EditQuestion records a QuestionEdited event; the stored question list stays untouched.
func (s *FormService) EditQuestion(ctx context.Context, input ports.EditQuestionInput) error {
	if input.NewQuestion == nil {
		return fmt.Errorf("%w: new question is required", domain.ErrInvalidInput)
	}

	form, err := s.forms.FindForm(ctx, input.UserID, input.FormID)
	if err != nil {
		return err
	}

	former, ok := form.CurrentQuestions().Find(input.QuestionID)
	if !ok {
		return domain.ErrQuestionNotFound
	}

	domain.AssignQuestionID(input.NewQuestion, input.QuestionID)
	event := &domain.QuestionEdited{
		QuestionID:     input.QuestionID,
		FormerQuestion: former,
		NewQuestion:    input.NewQuestion,
		EditedBy:       input.UserID,
		EditedAt:       s.now(),
	}
	return s.forms.AppendEvent(ctx, input.FormID, input.UserID, event)
}
