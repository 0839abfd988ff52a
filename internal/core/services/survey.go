package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

type SurveyService struct {
	repo  ports.SurveyRepository
	store ports.ArtifactStore
}

func NewSurveyService(repo ports.SurveyRepository, store ports.ArtifactStore) *SurveyService {
	return &SurveyService{repo: repo, store: store}
}

// ValidateParticipant returns the trimmed participant name, or
// ErrMissingParticipant when it is blank.
func (s *SurveyService) ValidateParticipant(participant string) (string, error) {
	participant = strings.TrimSpace(participant)
	if participant == "" {
		return "", domain.ErrMissingParticipant
	}
	return participant, nil
}

// Start opens a session for the visuals of the run just generated.
func (s *SurveyService) Start(ctx context.Context, participant string, sampleSize, sampleCount int) (*domain.SurveySession, error) {
	participant, err := s.ValidateParticipant(participant)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.SurveySession{
		ID:          uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Participant: participant,
		SampleSize:  sampleSize,
		SampleCount: sampleCount,
		Responses:   map[string]string{},
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, session.ID)
}

func (s *SurveyService) Get(ctx context.Context, id uuid.UUID) (*domain.SurveySession, error) {
	return s.repo.GetByID(ctx, id)
}

// SubmitResponses merges answers keyed by visual path into the session. Every
// key must name a visual in the current metadata document.
func (s *SurveyService) SubmitResponses(ctx context.Context, id uuid.UUID, responses map[string]string) (*domain.SurveySession, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := s.store.ReadMetadata()
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e.VisualPath] = true
	}

	merged := make(map[string]string, len(session.Responses)+len(responses))
	for k, v := range session.Responses {
		merged[k] = v
	}
	for k, v := range responses {
		if !known[k] {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidResponse, k)
		}
		merged[k] = v
	}

	if err := s.repo.UpdateResponses(ctx, id, merged); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
