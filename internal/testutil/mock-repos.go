package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

// MockEmployeeRepo is a mock of EmployeeRepository.
type MockEmployeeRepo struct {
	mock.Mock
}

func (m *MockEmployeeRepo) List(ctx context.Context) ([]domain.EmployeeRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmployeeRecord), args.Error(1)
}

// MockPredictionRepo is a mock of PredictionRepository.
type MockPredictionRepo struct {
	mock.Mock
}

func (m *MockPredictionRepo) Create(ctx context.Context, prediction *domain.ModelPrediction) error {
	args := m.Called(ctx, prediction)
	return args.Error(0)
}

func (m *MockPredictionRepo) List(ctx context.Context) ([]domain.ModelPrediction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ModelPrediction), args.Error(1)
}

// MockSurveyRepo is a mock of SurveyRepository.
type MockSurveyRepo struct {
	mock.Mock
}

func (m *MockSurveyRepo) Create(ctx context.Context, session *domain.SurveySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSurveyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SurveySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SurveySession), args.Error(1)
}

func (m *MockSurveyRepo) UpdateResponses(ctx context.Context, id uuid.UUID, responses map[string]string) error {
	args := m.Called(ctx, id, responses)
	return args.Error(0)
}

// MockTableLoader is a mock of TableLoader.
type MockTableLoader struct {
	mock.Mock
}

func (m *MockTableLoader) ReplaceTable(ctx context.Context, name string, table *domain.Table, types []domain.ColumnType) error {
	args := m.Called(ctx, name, table, types)
	return args.Error(0)
}

// MockDatasetSource is a mock of DatasetSource.
type MockDatasetSource struct {
	mock.Mock
}

func (m *MockDatasetSource) Extract(ctx context.Context, cfg domain.DatasetConfig) (*domain.Table, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

// MockVisualRenderer is a mock of VisualRenderer.
type MockVisualRenderer struct {
	mock.Mock
}

func (m *MockVisualRenderer) Render(male, female []domain.EmployeeRecord, destination string, opts domain.RenderOptions) error {
	args := m.Called(male, female, destination, opts)
	return args.Error(0)
}

// MockPredictionChartRenderer is a mock of PredictionChartRenderer.
type MockPredictionChartRenderer struct {
	mock.Mock
}

func (m *MockPredictionChartRenderer) RenderPredictions(predictions []domain.ModelPrediction, destination string) error {
	args := m.Called(predictions, destination)
	return args.Error(0)
}

var (
	_ ports.EmployeeRepository      = (*MockEmployeeRepo)(nil)
	_ ports.PredictionRepository    = (*MockPredictionRepo)(nil)
	_ ports.SurveyRepository        = (*MockSurveyRepo)(nil)
	_ ports.TableLoader             = (*MockTableLoader)(nil)
	_ ports.DatasetSource           = (*MockDatasetSource)(nil)
	_ ports.VisualRenderer          = (*MockVisualRenderer)(nil)
	_ ports.PredictionChartRenderer = (*MockPredictionChartRenderer)(nil)
)
