package domain

import (
	"time"

	"github.com/google/uuid"
)

type Medication struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	MedicationName string    `json:"medication_name"`
	Dose           string    `json:"dose"`
	Timing         string    `json:"timing"`
	CreatedAt      time.Time `json:"created_at"`
}
