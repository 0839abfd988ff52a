package ports

import (
	"context"

	"salary-bias-service/internal/core/domain"
)

// DatasetSource extracts the raw table named by an ETL dataset config.
type DatasetSource interface {
	Extract(ctx context.Context, cfg domain.DatasetConfig) (*domain.Table, error)
}
