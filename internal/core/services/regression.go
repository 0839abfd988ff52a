package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

// FitLinearModel fits MonthlyIncome ~ TotalWorkingYears + Age with an
// intercept by least squares.
func FitLinearModel(records []domain.EmployeeRecord) (domain.LinearModel, error) {
	n := len(records)
	if n < 3 {
		return domain.LinearModel{}, fmt.Errorf("%w: regression needs at least 3 records, have %d", domain.ErrInsufficientData, n)
	}

	x := mat.NewDense(n, 3, nil)
	y := mat.NewVecDense(n, nil)
	for i, r := range records {
		x.Set(i, 0, 1)
		x.Set(i, 1, float64(r.TotalWorkingYears))
		x.Set(i, 2, float64(r.Age))
		y.SetVec(i, r.MonthlyIncome)
	}

	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return domain.LinearModel{}, fmt.Errorf("fit linear model: %w", err)
		}
		log.WithField("condition", float64(cond)).Warn("ill-conditioned regression")
	}

	return domain.LinearModel{
		Intercept: beta.AtVec(0),
		YearsCoef: beta.AtVec(1),
		AgeCoef:   beta.AtVec(2),
	}, nil
}

// MeanAbsoluteError of model predictions over records.
func MeanAbsoluteError(model domain.LinearModel, records []domain.EmployeeRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += math.Abs(r.MonthlyIncome - model.Predict(r))
	}
	return sum / float64(len(records))
}

type RegressionService struct {
	repo        ports.EmployeeRepository
	predictions ports.PredictionRepository
	chart       ports.PredictionChartRenderer
}

func NewRegressionService(repo ports.EmployeeRepository, predictions ports.PredictionRepository, chart ports.PredictionChartRenderer) *RegressionService {
	return &RegressionService{repo: repo, predictions: predictions, chart: chart}
}

type evaluation struct {
	model       string
	dataset     string
	phase       domain.EvaluationPhase
	fit         domain.LinearModel
	testRecords []domain.EmployeeRecord
}

// Evaluate trains male, female and combined models and stores the error of
// each model on its own data and on the other groups.
func (s *RegressionService) Evaluate(ctx context.Context) ([]domain.ModelPrediction, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	male, female := domain.SplitByGender(records)
	// the combined model sees every row, including unknown gender
	all := records

	maleModel, err := FitLinearModel(male)
	if err != nil {
		return nil, fmt.Errorf("male model: %w", err)
	}
	femaleModel, err := FitLinearModel(female)
	if err != nil {
		return nil, fmt.Errorf("female model: %w", err)
	}
	combinedModel, err := FitLinearModel(all)
	if err != nil {
		return nil, fmt.Errorf("combined model: %w", err)
	}

	evals := []evaluation{
		{"Male Model", "Male Data", domain.PhaseBeforeSwap, maleModel, male},
		{"Female Model", "Female Data", domain.PhaseBeforeSwap, femaleModel, female},
		{"Combined Model", "All Data", domain.PhaseBeforeSwap, combinedModel, all},
		{"Male Model", "Female Data", domain.PhaseAfterSwap, maleModel, female},
		{"Female Model", "Male Data", domain.PhaseAfterSwap, femaleModel, male},
		{"Combined Model", "Male Data", domain.PhaseAfterSwap, combinedModel, male},
		{"Combined Model", "Female Data", domain.PhaseAfterSwap, combinedModel, female},
	}

	results := make([]domain.ModelPrediction, 0, len(evals))
	for _, e := range evals {
		p := &domain.ModelPrediction{
			ModelType:         e.model,
			TestDataset:       e.dataset,
			MeanAbsoluteError: MeanAbsoluteError(e.fit, e.testRecords),
			Phase:             e.phase,
		}
		if err := s.predictions.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("store prediction: %w", err)
		}
		log.WithFields(log.Fields{
			"phase":   p.Phase,
			"model":   p.ModelType,
			"dataset": p.TestDataset,
			"mae":     fmt.Sprintf("%.2f", p.MeanAbsoluteError),
		}).Info("model evaluated")
		results = append(results, *p)
	}
	return results, nil
}

func (s *RegressionService) List(ctx context.Context) ([]domain.ModelPrediction, error) {
	return s.predictions.List(ctx)
}

// Chart renders stored prediction errors as a bar chart.
func (s *RegressionService) Chart(ctx context.Context, destination string) error {
	preds, err := s.predictions.List(ctx)
	if err != nil {
		return err
	}
	if len(preds) == 0 {
		return fmt.Errorf("%w: no stored predictions", domain.ErrInsufficientData)
	}
	return s.chart.RenderPredictions(preds, destination)
}
