package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"exam-service/internal/exam"
	"exam-service/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type fakeTestStore struct {
	tests map[string]*models.TestDefinition
}

func (f *fakeTestStore) FindByID(ctx context.Context, id string) (*models.TestDefinition, error) {
	if t, ok := f.tests[id]; ok {
		return t, nil
	}
	return nil, mongo.ErrNoDocuments
}

type fakeQuestionStore struct {
	questions []models.Question
}

func (f *fakeQuestionStore) FindByTriple(ctx context.Context, mainSection, subSection, category string) ([]models.Question, error) {
	var out []models.Question
	for _, q := range f.questions {
		if q.MainSection == mainSection && q.SubSection == subSection && q.Category == category {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeResultStore struct {
	created []*models.TestResult
	fail    bool
}

func (f *fakeResultStore) Create(ctx context.Context, result *models.TestResult) error {
	if f.fail {
		return errors.New("write refused")
	}
	result.ID = fmt.Sprintf("result-%d", len(f.created)+1)
	f.created = append(f.created, result)
	return nil
}

func fixtureService(poolSize int, results *fakeResultStore) *ExamService {
	def := &models.TestDefinition{
		ID:              "test-1",
		Name:            "Theory B",
		MainSection:     "traffic",
		SubSection:      "signs",
		Category:        "warning",
		DurationMinutes: 10,
		TotalQuestions:  2,
		PassingScore:    50,
	}
	questions := make([]models.Question, poolSize)
	for i := range questions {
		questions[i] = models.Question{
			ID:            fmt.Sprintf("q%d", i),
			MainSection:   "traffic",
			SubSection:    "signs",
			Category:      "warning",
			QuestionText:  fmt.Sprintf("question %d", i),
			Options:       []string{"right", "wrong"},
			CorrectAnswer: "right",
		}
	}
	return NewExamService(
		&fakeTestStore{tests: map[string]*models.TestDefinition{"test-1": def}},
		&fakeQuestionStore{questions: questions},
		results,
		nil, // no event broker in tests
		nil, // no progress cache in tests
	)
}

func TestStartSessionUnknownTest(t *testing.T) {
	svc := fixtureService(2, &fakeResultStore{})
	_, err := svc.StartSession(context.Background(), "missing", "user-1")
	if !errors.Is(err, ErrTestNotFound) {
		t.Errorf("expected ErrTestNotFound, got %v", err)
	}
}

func TestStartSessionEmptyPool(t *testing.T) {
	svc := fixtureService(0, &fakeResultStore{})
	_, err := svc.StartSession(context.Background(), "test-1", "user-1")
	if !errors.Is(err, exam.ErrEmptyQuestionPool) {
		t.Errorf("expected ErrEmptyQuestionPool, got %v", err)
	}
}

func TestStartSessionShortenedPool(t *testing.T) {
	svc := fixtureService(1, &fakeResultStore{})
	session, err := svc.StartSession(context.Background(), "test-1", "user-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !session.Shortened() {
		t.Error("expected shortened session with pool smaller than requested")
	}
	if session.QuestionCount() != 1 {
		t.Errorf("expected 1 question, got %d", session.QuestionCount())
	}
}

func TestFullSessionFlow(t *testing.T) {
	results := &fakeResultStore{}
	svc := fixtureService(2, results)

	session, err := svc.StartSession(context.Background(), "test-1", "user-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.State() != exam.StateInProgress {
		t.Fatalf("state %s after start", session.State())
	}

	// Answer q1 correctly, q2 wrong, then advance off the end.
	if recorded, _, err := svc.SelectAnswer(context.Background(), session.ID, "right"); err != nil || !recorded {
		t.Fatalf("answer 1: recorded=%v err=%v", recorded, err)
	}
	if _, summary, err := svc.Advance(context.Background(), session.ID); err != nil || summary != nil {
		t.Fatalf("advance 1: summary=%v err=%v", summary, err)
	}
	if recorded, _, err := svc.SelectAnswer(context.Background(), session.ID, "wrong"); err != nil || !recorded {
		t.Fatalf("answer 2: recorded=%v err=%v", recorded, err)
	}

	_, summary, err := svc.Advance(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("final advance: %v", err)
	}
	if summary == nil {
		t.Fatal("advancing past the last question must submit")
	}
	if summary.CorrectAnswers != 1 || summary.ResultPercentage != 50 || !summary.Passed {
		t.Errorf("summary %d/%d passed=%v, want 1 correct, 50%%, pass",
			summary.CorrectAnswers, summary.ResultPercentage, summary.Passed)
	}
	if !summary.Persisted || summary.ResultID == "" {
		t.Error("result should be persisted with an id")
	}
	if len(results.created) != 1 {
		t.Fatalf("expected exactly one result write, got %d", len(results.created))
	}
	if results.created[0].CompletionType != exam.CompletionCompleted {
		t.Errorf("completion type %s", results.created[0].CompletionType)
	}

	// The session leaves the registry once terminal.
	if _, err := svc.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Error("terminal session still registered")
	}
}

func TestFinishIsExactlyOnce(t *testing.T) {
	results := &fakeResultStore{}
	svc := fixtureService(2, results)
	session, _ := svc.StartSession(context.Background(), "test-1", "user-1")

	if _, err := svc.Finish(context.Background(), session.ID, exam.CompletionCompleted); err != nil {
		t.Fatalf("first finish: %v", err)
	}
	if _, err := svc.Finish(context.Background(), session.ID, exam.CompletionTimeout); !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrAlreadySubmitting) {
		t.Errorf("second finish should be suppressed, got %v", err)
	}
	if len(results.created) != 1 {
		t.Errorf("double submit wrote %d results", len(results.created))
	}
}

func TestFinishWithoutIdentitySkipsWrite(t *testing.T) {
	results := &fakeResultStore{}
	svc := fixtureService(2, results)
	session, _ := svc.StartSession(context.Background(), "test-1", "")

	summary, err := svc.Finish(context.Background(), session.ID, exam.CompletionCompleted)
	if err != nil {
		t.Fatalf("finish must not fail on missing identity: %v", err)
	}
	if summary.Persisted || summary.PersistError == "" {
		t.Error("expected skipped write with an explanation")
	}
	if len(results.created) != 0 {
		t.Errorf("result written without identity")
	}
	// The in-memory summary is still complete.
	if summary.TotalQuestions != 2 || summary.TestName != "Theory B" {
		t.Error("summary missing in-memory data")
	}
}

func TestFinishSurvivesPersistenceFailure(t *testing.T) {
	results := &fakeResultStore{fail: true}
	svc := fixtureService(2, results)
	session, _ := svc.StartSession(context.Background(), "test-1", "user-1")
	svc.SelectAnswer(context.Background(), session.ID, "right")

	summary, err := svc.Finish(context.Background(), session.ID, exam.CompletionCompleted)
	if err != nil {
		t.Fatalf("finish must recover from a failed write: %v", err)
	}
	if summary.Persisted {
		t.Error("summary claims persistence after a failed write")
	}
	if summary.PersistError == "" {
		t.Error("failed write should be reported in the summary")
	}
	if summary.CorrectAnswers != 1 {
		t.Errorf("in-memory score lost: %d", summary.CorrectAnswers)
	}
}

func TestAbortPersistsNothing(t *testing.T) {
	results := &fakeResultStore{}
	svc := fixtureService(2, results)
	session, _ := svc.StartSession(context.Background(), "test-1", "user-1")
	svc.SelectAnswer(context.Background(), session.ID, "right")

	if err := svc.Abort(context.Background(), session.ID); err != nil {
		t.Fatalf("abort: %v", err)
	}
	if len(results.created) != 0 {
		t.Error("abort must not write a result")
	}
	if session.State() != exam.StateTerminal {
		t.Errorf("state after abort: %s", session.State())
	}
	if _, err := svc.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Error("aborted session still registered")
	}
}

func TestTimeoutSubmission(t *testing.T) {
	results := &fakeResultStore{}
	svc := fixtureService(2, results)
	session, _ := svc.StartSession(context.Background(), "test-1", "user-1")

	// Run the full 600 simulated seconds; the expiring tick submits.
	for i := 0; i < 600; i++ {
		if session.Tick() {
			svc.expire(session.ID)
		}
	}

	if session.RemainingSeconds() != 0 {
		t.Errorf("remaining %d after full countdown", session.RemainingSeconds())
	}
	if session.State() != exam.StateTerminal {
		t.Errorf("state after timeout: %s", session.State())
	}
	if len(results.created) != 1 {
		t.Fatalf("expected one timeout result, got %d", len(results.created))
	}
	if results.created[0].CompletionType != exam.CompletionTimeout {
		t.Errorf("completion type %s", results.created[0].CompletionType)
	}
	// Every question snapshot is present with the unanswered marker.
	for i, snap := range results.created[0].Questions {
		if snap.SelectedAnswer != nil {
			t.Errorf("question %d should be unanswered", i)
		}
	}
}
