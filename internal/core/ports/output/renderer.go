package ports

import "salary-bias-service/internal/core/domain"

// VisualRenderer writes exactly one comparison image to destination. It fails
// with domain.ErrMalformedInput, writing nothing, when either group is empty.
type VisualRenderer interface {
	Render(male, female []domain.EmployeeRecord, destination string, opts domain.RenderOptions) error
}

type PredictionChartRenderer interface {
	RenderPredictions(predictions []domain.ModelPrediction, destination string) error
}
