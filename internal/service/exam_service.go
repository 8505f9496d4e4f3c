package service

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"exam-service/internal/event"
	"exam-service/internal/exam"
	"exam-service/internal/models"
	"exam-service/internal/progress"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrTestNotFound      = errors.New("test not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionNotActive  = errors.New("session is not in progress")
	ErrAlreadySubmitting = errors.New("session already submitted")
)

// Store interfaces keep the orchestrator testable with in-memory fakes;
// the mongo repositories satisfy them structurally.

type TestStore interface {
	FindByID(ctx context.Context, id string) (*models.TestDefinition, error)
}

type QuestionStore interface {
	FindByTriple(ctx context.Context, mainSection, subSection, category string) ([]models.Question, error)
}

type ResultStore interface {
	Create(ctx context.Context, result *models.TestResult) error
}

// Summary is what the examinee sees after a session terminates. It is
// computed from in-memory state, so it exists even when the result write
// was skipped or failed — the examinee is never stuck on submission.
type Summary struct {
	SessionID        string `json:"session_id"`
	CorrectAnswers   int    `json:"correct_answers"`
	TotalQuestions   int    `json:"total_questions"`
	ResultPercentage int    `json:"result_percentage"`
	Passed           bool   `json:"passed"`
	TestName         string `json:"test_name"`
	MainSection      string `json:"main_section"`
	SubSection       string `json:"sub_section"`
	Category         string `json:"category"`
	CompletionType   string `json:"completion_type"`
	ResultID         string `json:"result_id,omitempty"`
	Persisted        bool   `json:"persisted"`
	PersistError     string `json:"persist_error,omitempty"`
}

// ExamService runs live exam sessions: it prepares question sets, owns the
// in-memory session registry, drives timers, and persists results on
// completion. Progress snapshots are written through to the cache after
// every mutation.
type ExamService struct {
	tests     TestStore
	questions QuestionStore
	results   ResultStore
	publisher *event.EventPublisher
	progress  *progress.Store

	mu       sync.RWMutex
	sessions map[string]*exam.Session
}

func NewExamService(
	tests TestStore,
	questions QuestionStore,
	results ResultStore,
	publisher *event.EventPublisher,
	progressStore *progress.Store,
) *ExamService {
	return &ExamService{
		tests:     tests,
		questions: questions,
		results:   results,
		publisher: publisher,
		progress:  progressStore,
		sessions:  make(map[string]*exam.Session),
	}
}

// StartSession loads the test definition, draws the question set and puts
// the clock in motion. A missing definition is ErrTestNotFound; an empty
// pool is exam.ErrEmptyQuestionPool — both fatal, no timer ever starts.
func (s *ExamService) StartSession(ctx context.Context, testID, userID string) (*exam.Session, error) {
	def, err := s.tests.FindByID(ctx, testID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTestNotFound
		}
		return nil, err
	}

	pool, err := s.questions.FindByTriple(ctx, def.MainSection, def.SubSection, def.Category)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	set, err := exam.PrepareQuestionSet(pool, def.TotalQuestions, rng)
	if err != nil {
		return nil, err
	}
	if set.Shortened {
		log.Printf("session for test %s shortened: %d of %d questions available",
			testID, len(set.Questions), def.TotalQuestions)
	}

	session := exam.NewSession(uuid.NewString(), userID, *def, set)
	session.Begin()

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	session.StartTimer(func() { s.expire(session.ID) })
	s.saveProgress(ctx, session)

	s.publisher.Publish("exam.session.started", map[string]interface{}{
		"session_id": session.ID,
		"user_id":    userID,
		"test_id":    testID,
		"questions":  session.QuestionCount(),
		"shortened":  session.Shortened(),
	})

	return session, nil
}

// Get returns a live session from the registry.
func (s *ExamService) Get(sessionID string) (*exam.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SelectAnswer records the examinee's choice for the current question.
// The first answer per question is final.
func (s *ExamService) SelectAnswer(ctx context.Context, sessionID, option string) (recorded bool, view exam.CurrentView, err error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return false, exam.CurrentView{}, err
	}
	if session.State() != exam.StateInProgress {
		return false, session.Current(), ErrSessionNotActive
	}
	recorded, _ = session.SelectAnswer(option)
	if recorded {
		s.saveProgress(ctx, session)
	}
	return recorded, session.Current(), nil
}

// Advance moves to the next question; on the last question it submits the
// session instead and returns the summary.
func (s *ExamService) Advance(ctx context.Context, sessionID string) (view exam.CurrentView, summary *Summary, err error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return exam.CurrentView{}, nil, err
	}
	moved, atEnd := session.Advance()
	if atEnd {
		summary, err = s.Finish(ctx, sessionID, exam.CompletionCompleted)
		return session.Current(), summary, err
	}
	if moved {
		s.saveProgress(ctx, session)
	}
	return session.Current(), nil, nil
}

// Retreat steps back one question; answers and score are untouched.
func (s *ExamService) Retreat(ctx context.Context, sessionID string) (exam.CurrentView, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return exam.CurrentView{}, err
	}
	if session.Retreat() {
		s.saveProgress(ctx, session)
	}
	return session.Current(), nil
}

// ToggleMark flips the bookmark on a question. Cosmetic only.
func (s *ExamService) ToggleMark(ctx context.Context, sessionID string, index int) (bool, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return false, err
	}
	marked := session.ToggleMark(index)
	s.saveProgress(ctx, session)
	return marked, nil
}

// Finish drives InProgress -> Submitting -> Terminal exactly once and
// persists the result best-effort. A missing identity or a failed write is
// reported in the summary, never as a failed submission.
func (s *ExamService) Finish(ctx context.Context, sessionID, completionType string) (*Summary, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.BeginSubmit(completionType) {
		return nil, ErrAlreadySubmitting
	}

	result := session.BuildResult(time.Now().UTC())
	summary := &Summary{
		SessionID:        session.ID,
		CorrectAnswers:   result.CorrectAnswers,
		TotalQuestions:   result.TotalQuestions,
		ResultPercentage: result.ResultPercentage,
		Passed:           result.Passed,
		TestName:         result.TestName,
		MainSection:      result.MainSection,
		SubSection:       result.SubSection,
		Category:         result.Category,
		CompletionType:   completionType,
	}

	switch {
	case session.UserID == "":
		summary.PersistError = "no examinee identity; result not saved"
		log.Printf("session %s finished without identity, skipping result write", session.ID)
	default:
		if err := s.results.Create(ctx, result); err != nil {
			summary.PersistError = "failed to save result"
			log.Printf("session %s result write failed: %v", session.ID, err)
		} else {
			summary.Persisted = true
			summary.ResultID = result.ID
			s.publisher.Publish("exam.result.persisted", map[string]interface{}{
				"session_id": session.ID,
				"result_id":  result.ID,
				"user_id":    session.UserID,
			})
		}
	}

	session.Finalize()
	s.remove(ctx, session.ID)

	s.publisher.Publish("exam.session.completed", map[string]interface{}{
		"session_id":      session.ID,
		"user_id":         session.UserID,
		"completion_type": completionType,
		"percentage":      summary.ResultPercentage,
		"passed":          summary.Passed,
	})

	return summary, nil
}

// Abort ends a session on explicit examinee exit. Nothing is persisted;
// the aborted event keeps abandoned attempts countable for analytics.
func (s *ExamService) Abort(ctx context.Context, sessionID string) error {
	session, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	if !session.BeginSubmit(exam.CompletionAborted) {
		return ErrAlreadySubmitting
	}
	session.Finalize()
	s.remove(ctx, session.ID)

	s.publisher.Publish("exam.session.aborted", map[string]interface{}{
		"session_id": session.ID,
		"user_id":    session.UserID,
	})
	return nil
}

// Restore rebuilds a session from the progress cache after a restart and
// puts its clock back in motion. Live sessions are returned as-is.
func (s *ExamService) Restore(ctx context.Context, sessionID string) (*exam.Session, error) {
	if session, err := s.Get(sessionID); err == nil {
		return session, nil
	}

	state, err := s.progress.Load(ctx, sessionID)
	if err != nil {
		if progress.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	session := exam.FromState(state)
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	if session.State() == exam.StateInProgress {
		session.StartTimer(func() { s.expire(session.ID) })
	}
	return session, nil
}

// expire is the timer callback: the tick that reaches zero submits the
// session with completion type "timeout".
func (s *ExamService) expire(sessionID string) {
	if _, err := s.Finish(context.Background(), sessionID, exam.CompletionTimeout); err != nil {
		if !errors.Is(err, ErrAlreadySubmitting) && !errors.Is(err, ErrSessionNotFound) {
			log.Printf("session %s timeout submission failed: %v", sessionID, err)
		}
	}
}

func (s *ExamService) saveProgress(ctx context.Context, session *exam.Session) {
	if err := s.progress.Save(ctx, session.Snapshot()); err != nil {
		log.Printf("session %s progress write failed: %v", session.ID, err)
	}
}

func (s *ExamService) remove(ctx context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if err := s.progress.Delete(ctx, sessionID); err != nil {
		log.Printf("session %s progress delete failed: %v", sessionID, err)
	}
}
