package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

type predictionRepo struct {
	pool *pgxpool.Pool
}

func NewPredictionRepository(pool *pgxpool.Pool) ports.PredictionRepository {
	return &predictionRepo{pool: pool}
}

func (r *predictionRepo) Create(ctx context.Context, p *domain.ModelPrediction) error {
	query := `
		INSERT INTO model_predictions (model_type, test_dataset, mean_absolute_error, phase)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		p.ModelType, p.TestDataset, p.MeanAbsoluteError, string(p.Phase),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create model prediction: %w", err)
	}
	return nil
}

func (r *predictionRepo) List(ctx context.Context) ([]domain.ModelPrediction, error) {
	query := `
		SELECT id, model_type, test_dataset, mean_absolute_error, phase, created_at
		FROM model_predictions
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list model predictions: %w", err)
	}
	defer rows.Close()

	preds := []domain.ModelPrediction{}
	for rows.Next() {
		var p domain.ModelPrediction
		if err := rows.Scan(&p.ID, &p.ModelType, &p.TestDataset, &p.MeanAbsoluteError, &p.Phase, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan model prediction row: %w", err)
		}
		preds = append(preds, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate model prediction rows: %w", err)
	}
	return preds, nil
}
