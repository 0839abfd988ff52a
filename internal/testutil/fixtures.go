package testutil

import (
	"fmt"
	"math/rand/v2"

	"salary-bias-service/internal/core/domain"
)

// Employees returns males male and females female records with distinct IDs
// M1..Mn and F1..Fn. Age, experience and income vary with the index.
func Employees(males, females int) []domain.EmployeeRecord {
	records := make([]domain.EmployeeRecord, 0, males+females)
	for i := 1; i <= males; i++ {
		records = append(records, domain.EmployeeRecord{
			EmployeeID:        fmt.Sprintf("M%d", i),
			Gender:            domain.GenderMale,
			Age:               20 + i%40,
			TotalWorkingYears: i % 30,
			MonthlyIncome:     float64(2000 + 100*i),
		})
	}
	for i := 1; i <= females; i++ {
		records = append(records, domain.EmployeeRecord{
			EmployeeID:        fmt.Sprintf("F%d", i),
			Gender:            domain.GenderFemale,
			Age:               21 + i%40,
			TotalWorkingYears: (i + 3) % 30,
			MonthlyIncome:     float64(1900 + 100*i),
		})
	}
	return records
}

// NewRand returns a fixed-seed generator for reproducible tests.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}
