package exam

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"exam-service/internal/models"
)

func testTime() time.Time {
	return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
}

func TestRoundPercent(t *testing.T) {
	testCases := []struct {
		correct int
		total   int
		want    int
	}{
		{0, 10, 0},
		{10, 10, 100},
		{1, 2, 50},
		{2, 3, 67},  // 66.67 rounds up; pins round-half-away-from-zero
		{1, 3, 33},  // 33.33 rounds down
		{1, 8, 13},  // 12.5 rounds up, the half-way case
		{5, 40, 13}, // 12.5 again with larger counts
		{0, 0, 0},   // guarded division
	}

	for _, tc := range testCases {
		if got := RoundPercent(tc.correct, tc.total); got != tc.want {
			t.Errorf("RoundPercent(%d, %d) = %d, want %d", tc.correct, tc.total, got, tc.want)
		}
	}
}

// The §8 boundary scenario: 2 questions, 50% passing score, one right and
// one wrong. Equal to the passing score counts as a pass.
func TestPassingBoundaryScenario(t *testing.T) {
	def := models.TestDefinition{
		Name:            "boundary",
		DurationMinutes: 10,
		TotalQuestions:  2,
		PassingScore:    50,
	}
	set, err := PrepareQuestionSet(makePool(2), 2, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}

	run := func(answerSecond bool) *models.TestResult {
		s := NewSession("sess-b", "user-1", def, set)
		s.Begin()
		s.SelectAnswer("a") // correct
		s.Advance()
		if answerSecond {
			s.SelectAnswer("b") // wrong
		}
		s.BeginSubmit(CompletionCompleted)
		return s.BuildResult(testTime())
	}

	wrong := run(true)
	skipped := run(false)

	for name, result := range map[string]*models.TestResult{"wrong": wrong, "skipped": skipped} {
		if result.CorrectAnswers != 1 {
			t.Errorf("%s: correct=%d, want 1", name, result.CorrectAnswers)
		}
		if result.ResultPercentage != 50 {
			t.Errorf("%s: percentage=%d, want 50", name, result.ResultPercentage)
		}
		if !result.Passed {
			t.Errorf("%s: expected pass at the boundary", name)
		}
	}

	// Answered-wrong and never-answered score the same but snapshot
	// differently: the skipped question keeps the explicit nil marker.
	if wrong.Questions[1].SelectedAnswer == nil {
		t.Error("wrong answer lost from snapshot")
	}
	if skipped.Questions[1].SelectedAnswer != nil {
		t.Error("skipped question should have a nil selected answer")
	}
}

func TestResultSnapshotFields(t *testing.T) {
	def := models.TestDefinition{
		Name:            "snapshot fields",
		MainSection:     "traffic",
		SubSection:      "signs",
		Category:        "warning",
		DurationMinutes: 5,
		TotalQuestions:  1,
		PassingScore:    80,
	}
	pool := []models.Question{{
		ID:            "q1",
		QuestionText:  "what does this sign mean",
		Options:       []string{"stop", "yield"},
		CorrectAnswer: "stop",
		Images:        []string{"https://img/sign.png"},
		Explanation:   "octagonal signs always mean stop",
	}}
	set, _ := PrepareQuestionSet(pool, 1, rand.New(rand.NewSource(1)))
	s := NewSession("sess-s", "user-9", def, set)
	s.Begin()
	s.SelectAnswer("stop")
	s.BeginSubmit(CompletionCompleted)

	result := s.BuildResult(testTime())
	if result.UserID != "user-9" || result.TestName != "snapshot fields" {
		t.Error("identity or denormalized test name missing")
	}
	if result.MainSection != "traffic" || result.SubSection != "signs" || result.Category != "warning" {
		t.Error("denormalized category triple missing")
	}
	if !result.SubmittedAt.Equal(testTime()) {
		t.Errorf("submitted at %v", result.SubmittedAt)
	}

	snap := result.Questions[0]
	if snap.QuestionText == "" || len(snap.Options) != 2 || snap.CorrectAnswer != "stop" {
		t.Error("snapshot did not freeze the question")
	}
	if len(snap.Images) != 1 || snap.Explanation == "" {
		t.Error("snapshot dropped media or explanation")
	}
}

// Serializing a result and reading it back must reproduce the score and
// the per-question answers, including the unanswered markers.
func TestResultJSONRoundTrip(t *testing.T) {
	def := models.TestDefinition{DurationMinutes: 5, TotalQuestions: 3, PassingScore: 50}
	set, _ := PrepareQuestionSet(makePool(3), 3, rand.New(rand.NewSource(2)))
	s := NewSession("sess-j", "user-1", def, set)
	s.Begin()
	s.SelectAnswer("a")
	s.Advance()
	s.SelectAnswer("c")
	s.Advance() // third question left unanswered
	s.BeginSubmit(CompletionTimeout)

	original := s.BuildResult(testTime())
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded models.TestResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.CorrectAnswers != original.CorrectAnswers ||
		decoded.ResultPercentage != original.ResultPercentage {
		t.Error("aggregate values changed in round trip")
	}
	for i := range original.Questions {
		oa, da := original.Questions[i].SelectedAnswer, decoded.Questions[i].SelectedAnswer
		if (oa == nil) != (da == nil) {
			t.Errorf("question %d: unanswered marker not preserved", i)
		} else if oa != nil && *oa != *da {
			t.Errorf("question %d: %q != %q", i, *da, *oa)
		}
	}
	if decoded.Questions[2].SelectedAnswer != nil {
		t.Error("unanswered question decoded as answered")
	}
}
