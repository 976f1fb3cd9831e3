package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type QuestionKind string

const (
	KindMultichoice QuestionKind = "multichoice"
	KindSlider      QuestionKind = "slider"
	KindFreeForm    QuestionKind = "free_form"
)

// Question is a closed set: *MultichoiceQuestion, *SliderQuestion or *FreeFormQuestion.
type Question interface {
	QuestionID() uuid.UUID
	Kind() QuestionKind
	setID(id uuid.UUID)
	isQuestion()
}

type MultichoiceOption struct {
	ID   uuid.UUID `json:"id" bson:"id"`
	Name string    `json:"name" bson:"name"`
}

type MultichoiceQuestion struct {
	ID          uuid.UUID           `json:"id" bson:"id"`
	Title       string              `json:"title" bson:"title"`
	Options     []MultichoiceOption `json:"options" bson:"options"`
	MinSelected int                 `json:"min_selected" bson:"min_selected"`
	MaxSelected int                 `json:"max_selected" bson:"max_selected"`
}

type SliderQuestion struct {
	ID             uuid.UUID `json:"id" bson:"id"`
	Title          string    `json:"title" bson:"title"`
	Units          *string   `json:"units,omitempty" bson:"units,omitempty"`
	Low            float64   `json:"low" bson:"low"`
	High           float64   `json:"high" bson:"high"`
	Step           float64   `json:"step" bson:"step"`
	HighestMessage *string   `json:"highest_message,omitempty" bson:"highest_message,omitempty"`
	MiddleMessage  *string   `json:"middle_message,omitempty" bson:"middle_message,omitempty"`
	LowestMessage  *string   `json:"lowest_message,omitempty" bson:"lowest_message,omitempty"`
}

// FreeFormQuestion accepts typed text. A MaxLength of zero means unbounded.
type FreeFormQuestion struct {
	ID        uuid.UUID `json:"id" bson:"id"`
	Title     string    `json:"title" bson:"title"`
	MinLength int       `json:"min_length" bson:"min_length"`
	MaxLength int       `json:"max_length" bson:"max_length"`
}

func (q *MultichoiceQuestion) QuestionID() uuid.UUID { return q.ID }
func (q *MultichoiceQuestion) Kind() QuestionKind    { return KindMultichoice }
func (q *MultichoiceQuestion) setID(id uuid.UUID)    { q.ID = id }
func (*MultichoiceQuestion) isQuestion()             {}

func (q *SliderQuestion) QuestionID() uuid.UUID { return q.ID }
func (q *SliderQuestion) Kind() QuestionKind    { return KindSlider }
func (q *SliderQuestion) setID(id uuid.UUID)    { q.ID = id }
func (*SliderQuestion) isQuestion()             {}

func (q *FreeFormQuestion) QuestionID() uuid.UUID { return q.ID }
func (q *FreeFormQuestion) Kind() QuestionKind    { return KindFreeForm }
func (q *FreeFormQuestion) setID(id uuid.UUID)    { q.ID = id }
func (*FreeFormQuestion) isQuestion()             {}

// QuestionRecord is the tagged form of a Question used on the wire and in storage.
// Exactly one variant pointer is set, selected by Kind.
type QuestionRecord struct {
	Kind        QuestionKind         `json:"kind" bson:"kind"`
	Multichoice *MultichoiceQuestion `json:"multichoice,omitempty" bson:"multichoice,omitempty"`
	Slider      *SliderQuestion      `json:"slider,omitempty" bson:"slider,omitempty"`
	FreeForm    *FreeFormQuestion    `json:"free_form,omitempty" bson:"free_form,omitempty"`
}

func NewQuestionRecord(q Question) QuestionRecord {
	switch q := q.(type) {
	case *MultichoiceQuestion:
		return QuestionRecord{Kind: KindMultichoice, Multichoice: q}
	case *SliderQuestion:
		return QuestionRecord{Kind: KindSlider, Slider: q}
	case *FreeFormQuestion:
		return QuestionRecord{Kind: KindFreeForm, FreeForm: q}
	default:
		panic(fmt.Sprintf("domain: unhandled question type %T", q))
	}
}

func (r QuestionRecord) Question() (Question, error) {
	switch r.Kind {
	case KindMultichoice:
		if r.Multichoice != nil {
			return r.Multichoice, nil
		}
	case KindSlider:
		if r.Slider != nil {
			return r.Slider, nil
		}
	case KindFreeForm:
		if r.FreeForm != nil {
			return r.FreeForm, nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown question kind %q", ErrInvalidInput, r.Kind)
	}
	return nil, fmt.Errorf("%w: question of kind %q has no body", ErrInvalidInput, r.Kind)
}

type Questions []Question

func (qs Questions) Records() []QuestionRecord {
	records := make([]QuestionRecord, 0, len(qs))
	for _, q := range qs {
		records = append(records, NewQuestionRecord(q))
	}
	return records
}

func QuestionsFromRecords(records []QuestionRecord) (Questions, error) {
	qs := make(Questions, 0, len(records))
	for _, r := range records {
		q, err := r.Question()
		if err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
	return qs, nil
}

func (qs Questions) MarshalJSON() ([]byte, error) {
	return json.Marshal(qs.Records())
}

func (qs *Questions) UnmarshalJSON(b []byte) error {
	var records []QuestionRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return err
	}
	decoded, err := QuestionsFromRecords(records)
	if err != nil {
		return err
	}
	*qs = decoded
	return nil
}

func (qs Questions) Find(id uuid.UUID) (Question, bool) {
	for _, q := range qs {
		if q.QuestionID() == id {
			return q, true
		}
	}
	return nil, false
}

// AssignIDs gives every question, and every multichoice option, a fresh id.
func (qs Questions) AssignIDs() {
	for _, q := range qs {
		q.setID(uuid.New())
		if mc, ok := q.(*MultichoiceQuestion); ok {
			for i := range mc.Options {
				mc.Options[i].ID = uuid.New()
			}
		}
	}
}

// AssignQuestionID sets the question id and fills in missing multichoice option ids.
// Existing option ids are kept so earlier answers still resolve.
func AssignQuestionID(q Question, id uuid.UUID) {
	q.setID(id)
	if mc, ok := q.(*MultichoiceQuestion); ok {
		for i := range mc.Options {
			if mc.Options[i].ID == uuid.Nil {
				mc.Options[i].ID = uuid.New()
			}
		}
	}
}
