package ports

import (
	"context"

	"github.com/google/uuid"

	"salary-bias-service/internal/core/domain"
)

// EmployeeRepository reads the employee table. Implementations fail with
// domain.ErrSchemaMismatch before returning any record when a required column
// is absent.
type EmployeeRepository interface {
	List(ctx context.Context) ([]domain.EmployeeRecord, error)
}

type PredictionRepository interface {
	Create(ctx context.Context, prediction *domain.ModelPrediction) error
	List(ctx context.Context) ([]domain.ModelPrediction, error)
}

type SurveyRepository interface {
	Create(ctx context.Context, session *domain.SurveySession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SurveySession, error)
	UpdateResponses(ctx context.Context, id uuid.UUID, responses map[string]string) error
}

// TableLoader replaces a table with the given contents in one transaction.
type TableLoader interface {
	ReplaceTable(ctx context.Context, name string, table *domain.Table, types []domain.ColumnType) error
}
