package service

import (
	"context"

	"exam-service/internal/exam"
	"exam-service/internal/models"
	"exam-service/internal/repository"
)

type ResultService struct {
	Repo *repository.ResultRepository
}

func NewResultService(repo *repository.ResultRepository) *ResultService {
	return &ResultService{Repo: repo}
}

func (s *ResultService) GetResult(ctx context.Context, id string) (*models.TestResult, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *ResultService) GetResultsByUser(ctx context.Context, userID string) ([]models.TestResult, error) {
	return s.Repo.FindByUser(ctx, userID)
}

// CategoryPerformance aggregates an examinee's attempts within one
// category triple.
type CategoryPerformance struct {
	MainSection       string `json:"main_section"`
	SubSection        string `json:"sub_section"`
	Category          string `json:"category"`
	Attempts          int    `json:"attempts"`
	Passes            int    `json:"passes"`
	AveragePercentage int    `json:"average_percentage"`
}

// Performance is the student dashboard view over all stored results.
type Performance struct {
	Attempts          int                   `json:"attempts"`
	Passes            int                   `json:"passes"`
	AveragePercentage int                   `json:"average_percentage"`
	BestPercentage    int                   `json:"best_percentage"`
	ByCategory        []CategoryPerformance `json:"by_category"`
}

// GetPerformance computes aggregate statistics from the examinee's result
// history. Averages use the same rounding as session scoring.
func (s *ResultService) GetPerformance(ctx context.Context, userID string) (*Performance, error) {
	results, err := s.Repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildPerformance(results), nil
}

func buildPerformance(results []models.TestResult) *Performance {
	perf := &Performance{}
	if len(results) == 0 {
		return perf
	}

	type bucket struct {
		key      [3]string
		attempts int
		passes   int
		sum      int
	}
	var order [][3]string
	buckets := make(map[[3]string]*bucket)
	sum := 0

	for _, r := range results {
		perf.Attempts++
		sum += r.ResultPercentage
		if r.Passed {
			perf.Passes++
		}
		if r.ResultPercentage > perf.BestPercentage {
			perf.BestPercentage = r.ResultPercentage
		}

		key := [3]string{r.MainSection, r.SubSection, r.Category}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{key: key}
			buckets[key] = b
			order = append(order, key)
		}
		b.attempts++
		b.sum += r.ResultPercentage
		if r.Passed {
			b.passes++
		}
	}

	perf.AveragePercentage = exam.RoundPercent(sum, perf.Attempts*100)
	for _, key := range order {
		b := buckets[key]
		perf.ByCategory = append(perf.ByCategory, CategoryPerformance{
			MainSection:       key[0],
			SubSection:        key[1],
			Category:          key[2],
			Attempts:          b.attempts,
			Passes:            b.passes,
			AveragePercentage: exam.RoundPercent(b.sum, b.attempts*100),
		})
	}
	return perf
}
