package exam

import (
	"math/rand"
	"testing"

	"exam-service/internal/models"
)

func newTestSession(t *testing.T, poolSize, total int) *Session {
	t.Helper()
	def := models.TestDefinition{
		Name:            "Theory test",
		MainSection:     "traffic",
		SubSection:      "signs",
		Category:        "warning",
		DurationMinutes: 10,
		TotalQuestions:  total,
		PassingScore:    50,
	}
	set, err := PrepareQuestionSet(makePool(poolSize), total, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	s := NewSession("sess-1", "user-1", def, set)
	if !s.Begin() {
		t.Fatal("Begin failed")
	}
	return s
}

func TestBeginInitializesCountdown(t *testing.T) {
	s := newTestSession(t, 5, 5)
	if s.State() != StateInProgress {
		t.Errorf("expected in_progress, got %s", s.State())
	}
	if s.RemainingSeconds() != 600 {
		t.Errorf("expected 600 remaining seconds, got %d", s.RemainingSeconds())
	}
	if s.Begin() {
		t.Error("second Begin should be rejected")
	}
}

func TestFirstAnswerWins(t *testing.T) {
	s := newTestSession(t, 3, 3)

	recorded, correct := s.SelectAnswer("a")
	if !recorded || !correct {
		t.Fatalf("first answer: recorded=%v correct=%v, want true/true", recorded, correct)
	}

	// A second answer on the same index must not be recorded and must not
	// change the score, even if it differs from the first.
	recorded, correct = s.SelectAnswer("b")
	if recorded || correct {
		t.Errorf("second answer: recorded=%v correct=%v, want false/false", recorded, correct)
	}

	result := s.BuildResult(testTime())
	if result.CorrectAnswers != 1 {
		t.Errorf("expected correctCount 1, got %d", result.CorrectAnswers)
	}
	if got := *result.Questions[0].SelectedAnswer; got != "a" {
		t.Errorf("expected first answer to stick, got %q", got)
	}
}

func TestAdvanceRetreatBounds(t *testing.T) {
	s := newTestSession(t, 3, 3)

	if s.Retreat() {
		t.Error("retreat at first question should be a no-op")
	}

	moved, atEnd := s.Advance()
	if !moved || atEnd {
		t.Errorf("advance from 0: moved=%v atEnd=%v", moved, atEnd)
	}
	s.Advance()

	moved, atEnd = s.Advance()
	if moved || !atEnd {
		t.Errorf("advance at last question: moved=%v atEnd=%v, want false/true", moved, atEnd)
	}

	if !s.Retreat() {
		t.Error("retreat from last question should move")
	}
	if s.Current().Index != 1 {
		t.Errorf("expected index 1 after retreat, got %d", s.Current().Index)
	}
}

func TestRetreatKeepsAnswersAndScore(t *testing.T) {
	s := newTestSession(t, 2, 2)
	s.SelectAnswer("a")
	s.Advance()
	s.Retreat()

	view := s.Current()
	if view.SelectedAnswer == nil || *view.SelectedAnswer != "a" {
		t.Error("answer should survive retreating to the question")
	}
	if result := s.BuildResult(testTime()); result.CorrectAnswers != 1 {
		t.Errorf("score changed by navigation: %d", result.CorrectAnswers)
	}
}

func TestToggleMarkIsCosmetic(t *testing.T) {
	s := newTestSession(t, 2, 2)
	if !s.ToggleMark(0) {
		t.Error("first toggle should mark")
	}
	if s.ToggleMark(0) {
		t.Error("second toggle should unmark")
	}
	if s.ToggleMark(99) {
		t.Error("out of range index must not mark")
	}
	if result := s.BuildResult(testTime()); result.CorrectAnswers != 0 {
		t.Error("marking must not affect the score")
	}
}

func TestBeginSubmitExactlyOnce(t *testing.T) {
	s := newTestSession(t, 2, 2)

	if !s.BeginSubmit(CompletionCompleted) {
		t.Fatal("first BeginSubmit should win")
	}
	if s.BeginSubmit(CompletionTimeout) {
		t.Error("second BeginSubmit must be suppressed")
	}
	if s.CompletionType() != CompletionCompleted {
		t.Errorf("completion type overwritten: %s", s.CompletionType())
	}

	// No mutations once out of InProgress.
	if recorded, _ := s.SelectAnswer("a"); recorded {
		t.Error("answer recorded while submitting")
	}
	if moved, _ := s.Advance(); moved {
		t.Error("advance while submitting")
	}

	s.Finalize()
	if s.State() != StateTerminal {
		t.Errorf("expected terminal, got %s", s.State())
	}
}

func TestCurrentHidesKeyUntilAnswered(t *testing.T) {
	s := newTestSession(t, 2, 2)

	view := s.Current()
	if view.Question.CorrectAnswer != "" || view.Question.Explanation != "" {
		t.Error("correct answer leaked before answering")
	}

	s.SelectAnswer("b")
	view = s.Current()
	if view.Question.CorrectAnswer == "" {
		t.Error("correct answer should be revealed after answering")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestSession(t, 4, 4)
	s.SelectAnswer("a")
	s.Advance()
	s.SelectAnswer("b")
	s.ToggleMark(2)
	for i := 0; i < 30; i++ {
		s.Tick()
	}

	restored := FromState(s.Snapshot())

	if restored.State() != StateInProgress {
		t.Errorf("restored state %s", restored.State())
	}
	if restored.RemainingSeconds() != s.RemainingSeconds() {
		t.Errorf("remaining seconds %d != %d", restored.RemainingSeconds(), s.RemainingSeconds())
	}
	if restored.Current().Index != 1 {
		t.Errorf("restored index %d", restored.Current().Index)
	}

	want := s.BuildResult(testTime())
	got := restored.BuildResult(testTime())
	if got.CorrectAnswers != want.CorrectAnswers || got.ResultPercentage != want.ResultPercentage {
		t.Errorf("restored result diverged: %d/%d vs %d/%d",
			got.CorrectAnswers, got.ResultPercentage, want.CorrectAnswers, want.ResultPercentage)
	}
	for i := range want.Questions {
		wa, ga := want.Questions[i].SelectedAnswer, got.Questions[i].SelectedAnswer
		if (wa == nil) != (ga == nil) {
			t.Errorf("question %d: unanswered marker lost in round trip", i)
		} else if wa != nil && *wa != *ga {
			t.Errorf("question %d: answer %q != %q", i, *ga, *wa)
		}
	}
}
