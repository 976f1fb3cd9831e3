package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Form is a symptom questionnaire owned by a single user. Questions are never
// edited in place; edits and submissions are appended to Events.
type Form struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedBy   uuid.UUID `json:"created_by"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Questions   Questions `json:"questions"`
	Events      Events    `json:"events"`
	CreatedAt   time.Time `json:"created_at"`
}

func (f *Form) Submissions() []*FormSubmitted {
	var out []*FormSubmitted
	for _, e := range f.Events {
		if s, ok := e.(*FormSubmitted); ok {
			out = append(out, s)
		}
	}
	return out
}

// LastSubmittedAt returns the latest submission time, or nil if the form was never submitted.
func (f *Form) LastSubmittedAt() *time.Time {
	var latest *time.Time
	for _, s := range f.Submissions() {
		if latest == nil || s.SubmittedAt.After(*latest) {
			t := s.SubmittedAt
			latest = &t
		}
	}
	return latest
}

// CurrentQuestions folds QuestionEdited events over the original question list.
func (f *Form) CurrentQuestions() Questions {
	current := make(Questions, len(f.Questions))
	copy(current, f.Questions)
	for _, e := range f.Events {
		edit, ok := e.(*QuestionEdited)
		if !ok {
			continue
		}
		for i, q := range current {
			if q.QuestionID() == edit.QuestionID {
				current[i] = edit.NewQuestion
			}
		}
	}
	return current
}

// ValidateAnswers checks answers against the current questions of the form.
func (f *Form) ValidateAnswers(answers Answers) error {
	questions := f.CurrentQuestions()
	seen := make(map[uuid.UUID]bool, len(answers))
	for _, a := range answers {
		id := a.QuestionID()
		if seen[id] {
			return fmt.Errorf("%w: question %s answered more than once", ErrInvalidAnswer, id)
		}
		seen[id] = true

		q, ok := questions.Find(id)
		if !ok {
			return fmt.Errorf("%w: question %s is not part of this form", ErrInvalidAnswer, id)
		}
		if q.Kind() != a.Kind() {
			return fmt.Errorf("%w: question %s expects a %s answer", ErrInvalidAnswer, id, q.Kind())
		}
		if err := validateAnswer(q, a); err != nil {
			return err
		}
	}
	return nil
}

func validateAnswer(q Question, a Answer) error {
	switch q := q.(type) {
	case *MultichoiceQuestion:
		ans := a.(*MultichoiceAnswer)
		for _, opt := range q.Options {
			if opt.ID == ans.Option {
				return nil
			}
		}
		return fmt.Errorf("%w: option %s is not offered by question %s", ErrInvalidAnswer, ans.Option, q.ID)
	case *SliderQuestion:
		ans := a.(*SliderAnswer)
		if ans.Value < q.Low || ans.Value > q.High {
			return fmt.Errorf("%w: value %v outside [%v, %v]", ErrInvalidAnswer, ans.Value, q.Low, q.High)
		}
		return nil
	case *FreeFormQuestion:
		ans := a.(*FreeFormAnswer)
		n := utf8.RuneCountInString(ans.Text)
		if n < q.MinLength || (q.MaxLength > 0 && n > q.MaxLength) {
			return fmt.Errorf("%w: text length %d outside [%d, %d]", ErrInvalidAnswer, n, q.MinLength, q.MaxLength)
		}
		return nil
	default:
		panic(fmt.Sprintf("domain: unhandled question type %T", q))
	}
}
