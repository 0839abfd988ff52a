package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

type predictionRepo struct {
	db *sql.DB
}

func NewPredictionRepository(db *sql.DB) ports.PredictionRepository {
	return &predictionRepo{db: db}
}

func (r *predictionRepo) Create(ctx context.Context, p *domain.ModelPrediction) error {
	createdAt := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO model_predictions (model_type, test_dataset, mean_absolute_error, phase, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.ModelType, p.TestDataset, p.MeanAbsoluteError, string(p.Phase), formatTime(createdAt))
	if err != nil {
		return fmt.Errorf("create model prediction: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("read model prediction id: %w", err)
	}
	p.ID = id
	p.CreatedAt = createdAt
	return nil
}

func (r *predictionRepo) List(ctx context.Context) ([]domain.ModelPrediction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, model_type, test_dataset, mean_absolute_error, phase, created_at
		FROM model_predictions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list model predictions: %w", err)
	}
	defer rows.Close()

	preds := []domain.ModelPrediction{}
	for rows.Next() {
		var (
			p         domain.ModelPrediction
			phase     string
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.ModelType, &p.TestDataset, &p.MeanAbsoluteError, &phase, &createdAt); err != nil {
			return nil, fmt.Errorf("scan model prediction row: %w", err)
		}
		p.Phase = domain.EvaluationPhase(phase)
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse model prediction created_at: %w", err)
		}
		preds = append(preds, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate model prediction rows: %w", err)
	}
	return preds, nil
}
