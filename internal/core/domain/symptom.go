package domain

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

const (
	NeverUpdated = "Never updated"
	// RecentWindow bounds how old the latest submission may be for a form to count as recently completed.
	RecentWindow = 36 * time.Hour
)

// Symptom is the per-form status view shown on the caregiver dashboard. It is never stored.
type Symptom struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Description       *string   `json:"description,omitempty"`
	Status            string    `json:"status"`
	RecentlyCompleted bool      `json:"recently_completed"`
}

func NewSymptom(f *Form, now time.Time) Symptom {
	status, recent := Recency(f.LastSubmittedAt(), now)
	return Symptom{
		ID:                f.ID,
		Title:             f.Title,
		Description:       f.Description,
		Status:            status,
		RecentlyCompleted: recent,
	}
}

// Recency renders how long ago last happened and whether it falls inside RecentWindow.
// The window is half-open: a submission exactly RecentWindow old is not recent.
func Recency(last *time.Time, now time.Time) (string, bool) {
	if last == nil {
		return NeverUpdated, false
	}
	return humanize.RelTime(*last, now, "ago", "from now"), now.Sub(*last) < RecentWindow
}

// FormSubmittedWithForm joins a submission with the form it answers.
type FormSubmittedWithForm struct {
	FormID      uuid.UUID `json:"form_id"`
	Title       string    `json:"title"`
	Questions   Questions `json:"questions"`
	Answers     Answers   `json:"answers"`
	SubmittedBy uuid.UUID `json:"submitted_by"`
	SubmittedAt time.Time `json:"submitted_at"`
}
