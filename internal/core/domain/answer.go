package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Answer pairs a question reference with a value of the matching kind:
// *MultichoiceAnswer, *SliderAnswer or *FreeFormAnswer.
type Answer interface {
	QuestionID() uuid.UUID
	Kind() QuestionKind
	isAnswer()
}

type MultichoiceAnswer struct {
	Question uuid.UUID `json:"question_id" bson:"question_id"`
	Option   uuid.UUID `json:"option_id" bson:"option_id"`
}

type SliderAnswer struct {
	Question uuid.UUID `json:"question_id" bson:"question_id"`
	Value    float64   `json:"value" bson:"value"`
}

type FreeFormAnswer struct {
	Question uuid.UUID `json:"question_id" bson:"question_id"`
	Text     string    `json:"text" bson:"text"`
}

func (a *MultichoiceAnswer) QuestionID() uuid.UUID { return a.Question }
func (a *MultichoiceAnswer) Kind() QuestionKind    { return KindMultichoice }
func (*MultichoiceAnswer) isAnswer()               {}

func (a *SliderAnswer) QuestionID() uuid.UUID { return a.Question }
func (a *SliderAnswer) Kind() QuestionKind    { return KindSlider }
func (*SliderAnswer) isAnswer()               {}

func (a *FreeFormAnswer) QuestionID() uuid.UUID { return a.Question }
func (a *FreeFormAnswer) Kind() QuestionKind    { return KindFreeForm }
func (*FreeFormAnswer) isAnswer()               {}

type AnswerRecord struct {
	Kind        QuestionKind       `json:"kind" bson:"kind"`
	Multichoice *MultichoiceAnswer `json:"multichoice,omitempty" bson:"multichoice,omitempty"`
	Slider      *SliderAnswer      `json:"slider,omitempty" bson:"slider,omitempty"`
	FreeForm    *FreeFormAnswer    `json:"free_form,omitempty" bson:"free_form,omitempty"`
}

func NewAnswerRecord(a Answer) AnswerRecord {
	switch a := a.(type) {
	case *MultichoiceAnswer:
		return AnswerRecord{Kind: KindMultichoice, Multichoice: a}
	case *SliderAnswer:
		return AnswerRecord{Kind: KindSlider, Slider: a}
	case *FreeFormAnswer:
		return AnswerRecord{Kind: KindFreeForm, FreeForm: a}
	default:
		panic(fmt.Sprintf("domain: unhandled answer type %T", a))
	}
}

func (r AnswerRecord) Answer() (Answer, error) {
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
		return nil, fmt.Errorf("%w: unknown answer kind %q", ErrInvalidInput, r.Kind)
	}
	return nil, fmt.Errorf("%w: answer of kind %q has no body", ErrInvalidInput, r.Kind)
}

type Answers []Answer

func (as Answers) Records() []AnswerRecord {
	records := make([]AnswerRecord, 0, len(as))
	for _, a := range as {
		records = append(records, NewAnswerRecord(a))
	}
	return records
}

func AnswersFromRecords(records []AnswerRecord) (Answers, error) {
	as := make(Answers, 0, len(records))
	for _, r := range records {
		a, err := r.Answer()
		if err != nil {
			return nil, err
		}
		as = append(as, a)
	}
	return as, nil
}

func (as Answers) MarshalJSON() ([]byte, error) {
	return json.Marshal(as.Records())
}

func (as *Answers) UnmarshalJSON(b []byte) error {
	var records []AnswerRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return err
	}
	decoded, err := AnswersFromRecords(records)
	if err != nil {
		return err
	}
	*as = decoded
	return nil
}
