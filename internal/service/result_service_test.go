package service

import (
	"testing"

	"exam-service/internal/models"
)

func TestBuildPerformance(t *testing.T) {
	results := []models.TestResult{
		{MainSection: "traffic", SubSection: "signs", Category: "warning", ResultPercentage: 80, Passed: true},
		{MainSection: "traffic", SubSection: "signs", Category: "warning", ResultPercentage: 40, Passed: false},
		{MainSection: "traffic", SubSection: "rules", Category: "priority", ResultPercentage: 67, Passed: true},
	}

	perf := buildPerformance(results)

	if perf.Attempts != 3 || perf.Passes != 2 {
		t.Errorf("attempts=%d passes=%d, want 3/2", perf.Attempts, perf.Passes)
	}
	if perf.BestPercentage != 80 {
		t.Errorf("best=%d, want 80", perf.BestPercentage)
	}
	// (80+40+67)/3 = 62.33 rounds to 62.
	if perf.AveragePercentage != 62 {
		t.Errorf("average=%d, want 62", perf.AveragePercentage)
	}

	if len(perf.ByCategory) != 2 {
		t.Fatalf("expected 2 category buckets, got %d", len(perf.ByCategory))
	}
	warning := perf.ByCategory[0]
	if warning.Category != "warning" || warning.Attempts != 2 || warning.Passes != 1 {
		t.Errorf("warning bucket: %+v", warning)
	}
	if warning.AveragePercentage != 60 {
		t.Errorf("warning average=%d, want 60", warning.AveragePercentage)
	}
}

func TestBuildPerformanceEmpty(t *testing.T) {
	perf := buildPerformance(nil)
	if perf.Attempts != 0 || perf.AveragePercentage != 0 || len(perf.ByCategory) != 0 {
		t.Errorf("empty history should yield a zero performance, got %+v", perf)
	}
}
