package dto

import (
	"github.com/google/uuid"

	"salary-bias-service/internal/core/domain"
)

type SubmitResponsesRequest struct {
	Responses map[string]string `json:"responses" binding:"required"`
}

type SurveySessionResponse struct {
	ID          uuid.UUID         `json:"id"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
	Participant string            `json:"participant"`
	SampleSize  int               `json:"sample_size"`
	SampleCount int               `json:"sample_count"`
	Responses   map[string]string `json:"responses"`
}

func ToSurveySessionResponse(s *domain.SurveySession) SurveySessionResponse {
	responses := s.Responses
	if responses == nil {
		responses = map[string]string{}
	}
	return SurveySessionResponse{
		ID:          s.ID,
		CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Participant: s.Participant,
		SampleSize:  s.SampleSize,
		SampleCount: s.SampleCount,
		Responses:   responses,
	}
}
