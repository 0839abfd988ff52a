package dto

import (
	"path"
	"time"

	"salary-bias-service/internal/core/domain"
)

type CreateRunRequest struct {
	SampleSize  int    `json:"sample_size" binding:"required,min=1"`
	SampleCount int    `json:"sample_count" binding:"required,min=1"`
	Participant string `json:"participant" binding:"required,max=100"`
}

type VisualResponse struct {
	VisualPath  string    `json:"visual_path"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Cluster     string    `json:"cluster,omitempty"`
	Type        string    `json:"type,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	MaleIDs     []string  `json:"male_ids"`
	FemaleIDs   []string  `json:"female_ids"`
}

type ListVisualsResponse struct {
	Items []VisualResponse `json:"items"`
	Total int              `json:"total"`
}

type RunResponse struct {
	Session SurveySessionResponse `json:"session"`
	Visuals []VisualResponse      `json:"visuals"`
}

// ToVisualResponse links a visual to its URL under artifactPrefix.
func ToVisualResponse(e domain.MetadataEntry, artifactPrefix string) VisualResponse {
	return VisualResponse{
		VisualPath:  e.VisualPath,
		URL:         path.Join(artifactPrefix, e.VisualPath),
		Description: e.Description,
		Cluster:     e.Cluster,
		Type:        e.Type,
		Timestamp:   e.Timestamp,
		MaleIDs:     e.MaleIDs,
		FemaleIDs:   e.FemaleIDs,
	}
}

func ToVisualResponses(entries []domain.MetadataEntry, artifactPrefix string) []VisualResponse {
	items := make([]VisualResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, ToVisualResponse(e, artifactPrefix))
	}
	return items
}
