package domain

import "time"

// SignificanceLevel is the p-value threshold for a significant difference.
const SignificanceLevel = 0.05

const ScopeFullDataset = "Full_Dataset"

type TTestResult struct {
	Scope       string  `json:"cluster"`
	MaleMean    float64 `json:"male_mean"`
	FemaleMean  float64 `json:"female_mean"`
	TStatistic  float64 `json:"t_statistic"`
	PValue      float64 `json:"p_value"`
	Significant bool    `json:"statistically_significant"`
	NMale       int     `json:"n_male"`
	NFemale     int     `json:"n_female"`
}

type EvaluationPhase string

const (
	PhaseBeforeSwap EvaluationPhase = "Before Swap"
	PhaseAfterSwap  EvaluationPhase = "After Swap"
)

type ModelPrediction struct {
	ID                int64           `json:"id"`
	ModelType         string          `json:"model_type"`
	TestDataset       string          `json:"test_dataset"`
	MeanAbsoluteError float64         `json:"mean_absolute_error"`
	Phase             EvaluationPhase `json:"phase"`
	CreatedAt         time.Time       `json:"created_at"`
}

// LinearModel is an ordinary least squares fit of MonthlyIncome on
// TotalWorkingYears and Age.
type LinearModel struct {
	Intercept float64
	YearsCoef float64
	AgeCoef   float64
}

func (m LinearModel) Predict(r EmployeeRecord) float64 {
	return m.Intercept + m.YearsCoef*float64(r.TotalWorkingYears) + m.AgeCoef*float64(r.Age)
}
