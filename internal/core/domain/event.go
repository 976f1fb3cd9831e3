package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventFormSubmitted  EventKind = "form_submitted"
	EventQuestionEdited EventKind = "question_edited"
)

// Event is an entry of a form's append-only log: *FormSubmitted or *QuestionEdited.
type Event interface {
	Kind() EventKind
	OccurredAt() time.Time
	isEvent()
}

type FormSubmitted struct {
	Answers     Answers   `json:"answers"`
	SubmittedBy uuid.UUID `json:"submitted_by"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type QuestionEdited struct {
	QuestionID     uuid.UUID `json:"question_id"`
	FormerQuestion Question  `json:"former_question"`
	NewQuestion    Question  `json:"new_question"`
	EditedBy       uuid.UUID `json:"edited_by"`
	EditedAt       time.Time `json:"edited_at"`
}

func (e *FormSubmitted) Kind() EventKind       { return EventFormSubmitted }
func (e *FormSubmitted) OccurredAt() time.Time { return e.SubmittedAt }
func (*FormSubmitted) isEvent()                {}

func (e *QuestionEdited) Kind() EventKind       { return EventQuestionEdited }
func (e *QuestionEdited) OccurredAt() time.Time { return e.EditedAt }
func (*QuestionEdited) isEvent()                {}

func (e *QuestionEdited) MarshalJSON() ([]byte, error) {
	return json.Marshal(newQuestionEditedRecord(e))
}

type FormSubmittedRecord struct {
	Answers     []AnswerRecord `json:"answers" bson:"answers"`
	SubmittedBy uuid.UUID      `json:"submitted_by" bson:"submitted_by"`
	SubmittedAt time.Time      `json:"submitted_at" bson:"submitted_at"`
}

type QuestionEditedRecord struct {
	QuestionID     uuid.UUID      `json:"question_id" bson:"question_id"`
	FormerQuestion QuestionRecord `json:"former_question" bson:"former_question"`
	NewQuestion    QuestionRecord `json:"new_question" bson:"new_question"`
	EditedBy       uuid.UUID      `json:"edited_by" bson:"edited_by"`
	EditedAt       time.Time      `json:"edited_at" bson:"edited_at"`
}

func newQuestionEditedRecord(e *QuestionEdited) *QuestionEditedRecord {
	return &QuestionEditedRecord{
		QuestionID:     e.QuestionID,
		FormerQuestion: NewQuestionRecord(e.FormerQuestion),
		NewQuestion:    NewQuestionRecord(e.NewQuestion),
		EditedBy:       e.EditedBy,
		EditedAt:       e.EditedAt,
	}
}

// EventRecord is the tagged storage/wire form of an Event.
type EventRecord struct {
	Kind           EventKind             `json:"kind" bson:"kind"`
	FormSubmitted  *FormSubmittedRecord  `json:"form_submitted,omitempty" bson:"form_submitted,omitempty"`
	QuestionEdited *QuestionEditedRecord `json:"question_edited,omitempty" bson:"question_edited,omitempty"`
}

func NewEventRecord(e Event) EventRecord {
	switch e := e.(type) {
	case *FormSubmitted:
		return EventRecord{Kind: EventFormSubmitted, FormSubmitted: &FormSubmittedRecord{
			Answers:     e.Answers.Records(),
			SubmittedBy: e.SubmittedBy,
			SubmittedAt: e.SubmittedAt,
		}}
	case *QuestionEdited:
		return EventRecord{Kind: EventQuestionEdited, QuestionEdited: newQuestionEditedRecord(e)}
	default:
		panic(fmt.Sprintf("domain: unhandled event type %T", e))
	}
}

func (r EventRecord) Event() (Event, error) {
	switch r.Kind {
	case EventFormSubmitted:
		if r.FormSubmitted == nil {
			break
		}
		answers, err := AnswersFromRecords(r.FormSubmitted.Answers)
		if err != nil {
			return nil, err
		}
		return &FormSubmitted{
			Answers:     answers,
			SubmittedBy: r.FormSubmitted.SubmittedBy,
			SubmittedAt: r.FormSubmitted.SubmittedAt,
		}, nil
	case EventQuestionEdited:
		if r.QuestionEdited == nil {
			break
		}
		former, err := r.QuestionEdited.FormerQuestion.Question()
		if err != nil {
			return nil, err
		}
		next, err := r.QuestionEdited.NewQuestion.Question()
		if err != nil {
			return nil, err
		}
		return &QuestionEdited{
			QuestionID:     r.QuestionEdited.QuestionID,
			FormerQuestion: former,
			NewQuestion:    next,
			EditedBy:       r.QuestionEdited.EditedBy,
			EditedAt:       r.QuestionEdited.EditedAt,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown event kind %q", ErrInvalidInput, r.Kind)
	}
	return nil, fmt.Errorf("%w: event of kind %q has no body", ErrInvalidInput, r.Kind)
}

type Events []Event

func (es Events) Records() []EventRecord {
	records := make([]EventRecord, 0, len(es))
	for _, e := range es {
		records = append(records, NewEventRecord(e))
	}
	return records
}

func EventsFromRecords(records []EventRecord) (Events, error) {
	es := make(Events, 0, len(records))
	for _, r := range records {
		e, err := r.Event()
		if err != nil {
			return nil, err
		}
		es = append(es, e)
	}
	return es, nil
}

func (es Events) MarshalJSON() ([]byte, error) {
	return json.Marshal(es.Records())
}

func (es *Events) UnmarshalJSON(b []byte) error {
	var records []EventRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return err
	}
	decoded, err := EventsFromRecords(records)
	if err != nil {
		return err
	}
	*es = decoded
	return nil
}
