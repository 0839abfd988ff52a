package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

// WelchTTest compares two samples without assuming equal variances and
// returns the t statistic and two-sided p-value.
func WelchTTest(a, b []float64) (t, p float64, err error) {
	if len(a) < 2 || len(b) < 2 {
		return 0, 0, fmt.Errorf("%w: t-test needs at least 2 values per group, have %d and %d",
			domain.ErrInsufficientData, len(a), len(b))
	}

	ma, va := stat.MeanVariance(a, nil)
	mb, vb := stat.MeanVariance(b, nil)
	na, nb := float64(len(a)), float64(len(b))

	sa, sb := va/na, vb/nb
	se2 := sa + sb
	if se2 == 0 {
		return 0, 0, fmt.Errorf("%w: both groups have zero variance", domain.ErrInsufficientData)
	}

	t = (ma - mb) / math.Sqrt(se2)
	df := se2 * se2 / (sa*sa/(na-1) + sb*sb/(nb-1))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * dist.Survival(math.Abs(t))
	return t, p, nil
}

// CompareIncome runs a Welch t-test on monthly income between genders.
func CompareIncome(scope string, male, female []domain.EmployeeRecord) (domain.TTestResult, error) {
	m := incomes(male)
	f := incomes(female)

	t, p, err := WelchTTest(m, f)
	if err != nil {
		return domain.TTestResult{}, fmt.Errorf("%s: %w", scope, err)
	}

	return domain.TTestResult{
		Scope:       scope,
		MaleMean:    round(stat.Mean(m, nil), 2),
		FemaleMean:  round(stat.Mean(f, nil), 2),
		TStatistic:  t,
		PValue:      round(p, 5),
		Significant: p < domain.SignificanceLevel,
		NMale:       len(m),
		NFemale:     len(f),
	}, nil
}

type BiasAnalysisService struct {
	repo  ports.EmployeeRepository
	store ports.ArtifactStore
}

func NewBiasAnalysisService(repo ports.EmployeeRepository, store ports.ArtifactStore) *BiasAnalysisService {
	return &BiasAnalysisService{repo: repo, store: store}
}

// Run tests the full dataset and then each exported cluster, and writes all
// results to the artifact root. Clusters too small to test are skipped.
func (s *BiasAnalysisService) Run(ctx context.Context) ([]domain.TTestResult, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	male, female := domain.SplitByGender(records)
	full, err := CompareIncome(domain.ScopeFullDataset, male, female)
	if err != nil {
		return nil, err
	}
	results := []domain.TTestResult{full}
	logResult(full)

	for _, c := range []domain.Cluster{domain.ClusterLowLow, domain.ClusterLowHigh, domain.ClusterHighLow, domain.ClusterHighHigh} {
		cm, err := s.store.ReadClusterCSV(c, ports.ClusterPartMale)
		if err != nil {
			return nil, fmt.Errorf("read cluster %s: %w", c, err)
		}
		cf, err := s.store.ReadClusterCSV(c, ports.ClusterPartFemale)
		if err != nil {
			return nil, fmt.Errorf("read cluster %s: %w", c, err)
		}
		res, err := CompareIncome(string(c), cm, cf)
		if errors.Is(err, domain.ErrInsufficientData) {
			log.WithError(err).WithField("cluster", c).Warn("skipping cluster t-test")
			continue
		}
		if err != nil {
			return nil, err
		}
		results = append(results, res)
		logResult(res)
	}

	if err := s.store.WriteTTestResults(results); err != nil {
		return nil, fmt.Errorf("write t-test results: %w", err)
	}
	return results, nil
}

func logResult(r domain.TTestResult) {
	log.WithFields(log.Fields{
		"scope":       r.Scope,
		"male_mean":   r.MaleMean,
		"female_mean": r.FemaleMean,
		"p_value":     r.PValue,
		"significant": r.Significant,
	}).Info("t-test complete")
}

func incomes(records []domain.EmployeeRecord) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		out = append(out, r.MonthlyIncome)
	}
	return out
}

func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
