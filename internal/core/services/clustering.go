package services

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

// AssignClusters splits records into the four age/experience quadrants using
// medians taken over the whole input, then splits each quadrant by gender.
// Every input record lands in exactly one partition's All slice.
func AssignClusters(records []domain.EmployeeRecord) *domain.ClusterAssignment {
	ages := make([]float64, len(records))
	years := make([]float64, len(records))
	for i, r := range records {
		ages[i] = float64(r.Age)
		years[i] = float64(r.TotalWorkingYears)
	}

	a := &domain.ClusterAssignment{
		AgeMedian:   median(ages),
		YearsMedian: median(years),
		Partitions:  make(map[domain.Cluster]*domain.ClusterPartition, len(domain.Clusters)),
	}
	for _, c := range domain.Clusters {
		a.Partitions[c] = &domain.ClusterPartition{
			Cluster: c,
			All:     []domain.EmployeeRecord{},
			Male:    []domain.EmployeeRecord{},
			Female:  []domain.EmployeeRecord{},
		}
	}

	for _, r := range records {
		p := a.Partitions[domain.ClusterFor(r.Age, r.TotalWorkingYears, a.AgeMedian, a.YearsMedian)]
		p.All = append(p.All, r)
		switch r.Gender {
		case domain.GenderMale:
			p.Male = append(p.Male, r)
		case domain.GenderFemale:
			p.Female = append(p.Female, r)
		}
	}
	return a
}

// median averages the two middle values for even lengths. The input is not
// modified.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

type ClusterService struct {
	repo  ports.EmployeeRepository
	store ports.ArtifactStore
}

func NewClusterService(repo ports.EmployeeRepository, store ports.ArtifactStore) *ClusterService {
	return &ClusterService{repo: repo, store: store}
}

// Export clears the cluster folder and writes the combined, male and female
// CSVs of every non-empty cluster.
func (s *ClusterService) Export(ctx context.Context) (*domain.ClusterAssignment, error) {
	if err := s.store.ResetClusters(); err != nil {
		return nil, fmt.Errorf("reset clusters: %w", err)
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	assignment := AssignClusters(records)
	for _, c := range domain.Clusters {
		p := assignment.Partitions[c]
		if len(p.All) == 0 {
			continue
		}
		if err := s.store.WriteClusterCSV(c, ports.ClusterPartCombined, p.All); err != nil {
			return nil, err
		}
		if err := s.store.WriteClusterCSV(c, ports.ClusterPartMale, p.Male); err != nil {
			return nil, err
		}
		if err := s.store.WriteClusterCSV(c, ports.ClusterPartFemale, p.Female); err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{
			"cluster": c,
			"total":   len(p.All),
			"male":    len(p.Male),
			"female":  len(p.Female),
		}).Info("cluster exported")
	}

	log.WithFields(log.Fields{
		"age_median":   assignment.AgeMedian,
		"years_median": assignment.YearsMedian,
		"records":      len(records),
	}).Info("clustered data saved")
	return assignment, nil
}
