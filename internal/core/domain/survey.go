package domain

import (
	"time"

	"github.com/google/uuid"
)

// SurveySession ties a participant to the visuals generated for them and the
// answers they submit.
type SurveySession struct {
	ID          uuid.UUID         `json:"id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Participant string            `json:"participant"`
	SampleSize  int               `json:"sample_size"`
	SampleCount int               `json:"sample_count"`
	Responses   map[string]string `json:"responses"`
}
