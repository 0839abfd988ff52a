package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

type surveyRepo struct {
	db *sql.DB
}

func NewSurveyRepository(db *sql.DB) ports.SurveyRepository {
	return &surveyRepo{db: db}
}

func (r *surveyRepo) Create(ctx context.Context, s *domain.SurveySession) error {
	responsesJSON, err := json.Marshal(s.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO survey_sessions
			(id, created_at, updated_at, participant, sample_size, sample_count, responses)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.ID.String(), formatTime(s.CreatedAt), formatTime(s.UpdatedAt), s.Participant,
		s.SampleSize, s.SampleCount, string(responsesJSON))
	if err != nil {
		return fmt.Errorf("create survey session: %w", err)
	}
	return nil
}

func (r *surveyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SurveySession, error) {
	var (
		s                    domain.SurveySession
		rawID                string
		createdAt, updatedAt string
		responsesJSON        string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, participant, sample_size, sample_count, responses
		FROM survey_sessions
		WHERE id = ?
	`, id.String()).Scan(&rawID, &createdAt, &updatedAt, &s.Participant, &s.SampleSize, &s.SampleCount, &responsesJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get survey session: %w", err)
	}

	if s.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("parse survey session id: %w", err)
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse survey session created_at: %w", err)
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse survey session updated_at: %w", err)
	}
	s.Responses = map[string]string{}
	if responsesJSON != "" {
		if err := json.Unmarshal([]byte(responsesJSON), &s.Responses); err != nil {
			return nil, fmt.Errorf("unmarshal responses: %w", err)
		}
	}
	return &s, nil
}

func (r *surveyRepo) UpdateResponses(ctx context.Context, id uuid.UUID, responses map[string]string) error {
	responsesJSON, err := json.Marshal(responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE survey_sessions SET responses = ?, updated_at = ? WHERE id = ?`,
		string(responsesJSON), formatTime(time.Now()), id.String(),
	)
	if err != nil {
		return fmt.Errorf("update survey responses: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update survey responses: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
