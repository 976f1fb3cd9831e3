package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"github.com/vncsmyrnk/pulse/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// AggregatorService composes a user's own forms with those of the patients they care for.
type AggregatorService struct {
	forms ports.FormRepository
	links ports.RelationshipRepository
	now   func() time.Time
}

func NewAggregatorService(forms ports.FormRepository, links ports.RelationshipRepository) *AggregatorService {
	return &AggregatorService{
		forms: forms,
		links: links,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ListAllForms returns the user's forms followed by the forms of every patient listing
// the user as caregiver. A failure fetching any patient fails the whole call.
func (s *AggregatorService) ListAllForms(ctx context.Context, userID uuid.UUID) ([]*domain.Form, error) {
	own, err := s.forms.FindFormsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch own forms: %w", err)
	}

	patients, err := s.links.ListPatients(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve patients: %w", err)
	}

	perPatient := make([][]*domain.Form, len(patients))
	g, gctx := errgroup.WithContext(ctx)
	for i, patient := range patients {
		g.Go(func() error {
			forms, err := s.forms.FindFormsForUser(gctx, patient.ID)
			if err != nil {
				return fmt.Errorf("failed to fetch forms of patient %s: %w", patient.ID, err)
			}
			perPatient[i] = forms
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]*domain.Form, 0, len(own))
	all = append(all, own...)
	for _, forms := range perPatient {
		all = append(all, forms...)
	}
	return all, nil
}

func (s *AggregatorService) SymptomStatus(ctx context.Context, userID uuid.UUID) ([]domain.Symptom, error) {
	forms, err := s.ListAllForms(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	symptoms := make([]domain.Symptom, 0, len(forms))
	for _, f := range forms {
		symptoms = append(symptoms, domain.NewSymptom(f, now))
	}
	return symptoms, nil
}

// SubmissionHistory covers the user's own forms only, newest submission first.
func (s *AggregatorService) SubmissionHistory(ctx context.Context, userID uuid.UUID) ([]domain.FormSubmittedWithForm, error) {
	forms, err := s.forms.FindFormsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	history := []domain.FormSubmittedWithForm{}
	for _, f := range forms {
		questions := f.CurrentQuestions()
		for _, sub := range f.Submissions() {
			history = append(history, domain.FormSubmittedWithForm{
				FormID:      f.ID,
				Title:       f.Title,
				Questions:   questions,
				Answers:     sub.Answers,
				SubmittedBy: sub.SubmittedBy,
				SubmittedAt: sub.SubmittedAt,
			})
		}
	}

	slices.SortStableFunc(history, func(a, b domain.FormSubmittedWithForm) int {
		return b.SubmittedAt.Compare(a.SubmittedAt)
	})
	return history, nil
}
