package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

type surveyRepo struct {
	pool *pgxpool.Pool
}

func NewSurveyRepository(pool *pgxpool.Pool) ports.SurveyRepository {
	return &surveyRepo{pool: pool}
}

func (r *surveyRepo) Create(ctx context.Context, s *domain.SurveySession) error {
	responsesJSON, err := json.Marshal(s.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}

	query := `
		INSERT INTO survey_sessions
			(id, created_at, updated_at, participant, sample_size, sample_count, responses)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`
	_, err = r.pool.Exec(ctx, query,
		s.ID, s.CreatedAt, s.UpdatedAt, s.Participant,
		s.SampleSize, s.SampleCount, responsesJSON,
	)
	if err != nil {
		return fmt.Errorf("create survey session: %w", err)
	}
	return nil
}

func (r *surveyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SurveySession, error) {
	query := `
		SELECT id, created_at, updated_at, participant, sample_size, sample_count, responses
		FROM survey_sessions
		WHERE id = $1
	`
	s := &domain.SurveySession{}
	var responsesJSON []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CreatedAt, &s.UpdatedAt, &s.Participant,
		&s.SampleSize, &s.SampleCount, &responsesJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get survey session: %w", err)
	}

	s.Responses = map[string]string{}
	if len(responsesJSON) > 0 {
		if err := json.Unmarshal(responsesJSON, &s.Responses); err != nil {
			return nil, fmt.Errorf("unmarshal responses: %w", err)
		}
	}
	return s, nil
}

func (r *surveyRepo) UpdateResponses(ctx context.Context, id uuid.UUID, responses map[string]string) error {
	responsesJSON, err := json.Marshal(responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}

	result, err := r.pool.Exec(ctx,
		`UPDATE survey_sessions SET responses = $1, updated_at = NOW() WHERE id = $2`,
		responsesJSON, id,
	)
	if err != nil {
		return fmt.Errorf("update survey responses: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
