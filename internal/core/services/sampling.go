package services

import (
	"fmt"
	"math/rand/v2"
	"time"

	"salary-bias-service/internal/core/domain"
)

// NewRand returns a PCG source. A zero seed seeds from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SampleGenerator draws gender-balanced samples.
type SampleGenerator struct {
	rng *rand.Rand
}

func NewSampleGenerator(rng *rand.Rand) *SampleGenerator {
	return &SampleGenerator{rng: rng}
}

// GenerateRandomSample draws sampleSize records of each gender, uniformly and
// without replacement, from the records whose IDs are not yet in used. Drawn
// IDs are added to used. Nothing is drawn and used is untouched when either
// gender has fewer than sampleSize unused records.
func (g *SampleGenerator) GenerateRandomSample(records []domain.EmployeeRecord, used *domain.UsedIDSet, sampleSize int) (male, female []domain.EmployeeRecord, err error) {
	if sampleSize <= 0 {
		return nil, nil, domain.ErrInvalidSampleSize
	}

	remaining := make([]domain.EmployeeRecord, 0, len(records))
	for _, r := range records {
		if !used.Contains(r.EmployeeID) {
			remaining = append(remaining, r)
		}
	}
	males, females := domain.SplitByGender(remaining)

	if len(males) < sampleSize || len(females) < sampleSize {
		return nil, nil, fmt.Errorf("%w: need %d per gender, have %d male and %d female",
			domain.ErrInsufficientData, sampleSize, len(males), len(females))
	}

	male = g.WithoutReplacement(males, sampleSize)
	female = g.WithoutReplacement(females, sampleSize)

	used.Add(male...)
	used.Add(female...)
	return male, female, nil
}

// WithoutReplacement returns n distinct records chosen uniformly. The input
// slice is not modified.
func (g *SampleGenerator) WithoutReplacement(records []domain.EmployeeRecord, n int) []domain.EmployeeRecord {
	if n > len(records) {
		n = len(records)
	}
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	// partial Fisher-Yates
	out := make([]domain.EmployeeRecord, n)
	for i := 0; i < n; i++ {
		j := i + g.rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = records[idx[i]]
	}
	return out
}

// WithReplacement returns n records drawn uniformly with replacement.
func (g *SampleGenerator) WithReplacement(records []domain.EmployeeRecord, n int) []domain.EmployeeRecord {
	if len(records) == 0 {
		return []domain.EmployeeRecord{}
	}
	out := make([]domain.EmployeeRecord, n)
	for i := range out {
		out[i] = records[g.rng.IntN(len(records))]
	}
	return out
}
