package exam

import (
	"sync"

	"exam-service/internal/models"
)

// State is the lifecycle phase of a session.
type State string

const (
	StateLoading    State = "loading"
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
	StateTerminal   State = "terminal"
)

// CompletionType records how a session reached Terminal.
const (
	CompletionCompleted = "completed"
	CompletionTimeout   = "timeout"
	CompletionAborted   = "aborted"
)

// Session is one in-progress attempt at a test definition. All state lives
// in memory until the session terminates; mutations are serialized by one
// mutex so the timer tick and user actions never interleave.
type Session struct {
	mu sync.Mutex

	ID         string
	UserID     string
	Definition models.TestDefinition

	questions []models.Question
	shortened bool

	state            State
	currentIndex     int
	answers          map[int]string
	marked           map[int]bool
	correctCount     int
	remainingSeconds int
	completionType   string

	timerStarted bool
	timerStop    chan struct{}
}

// NewSession wraps a prepared question set. The session starts in Loading;
// call Begin once the caller is ready to run the clock.
func NewSession(id, userID string, def models.TestDefinition, set *QuestionSet) *Session {
	return &Session{
		ID:         id,
		UserID:     userID,
		Definition: def,
		questions:  set.Questions,
		shortened:  set.Shortened,
		state:      StateLoading,
		answers:    make(map[int]string),
		marked:     make(map[int]bool),
	}
}

// Begin moves Loading -> InProgress and arms the countdown value.
func (s *Session) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoading {
		return false
	}
	s.state = StateInProgress
	s.remainingSeconds = s.Definition.DurationMinutes * 60
	return true
}

// SelectAnswer records the choice for the current question. The first
// answer is final: a repeated call on an already answered index changes
// nothing and reports recorded=false. Scoring happens here, exactly once
// per question, when the first recorded answer matches the correct one.
func (s *Session) SelectAnswer(option string) (recorded bool, correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return false, false
	}
	if _, answered := s.answers[s.currentIndex]; answered {
		return false, false
	}
	s.answers[s.currentIndex] = option
	if option == s.questions[s.currentIndex].CorrectAnswer {
		s.correctCount++
		return true, true
	}
	return true, false
}

// Advance moves to the next question. On the last question it instead
// reports atEnd=true; the caller is expected to submit.
func (s *Session) Advance() (moved bool, atEnd bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return false, false
	}
	if s.currentIndex < len(s.questions)-1 {
		s.currentIndex++
		return true, false
	}
	return false, true
}

// Retreat moves back one question. Answers and score are untouched.
func (s *Session) Retreat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress || s.currentIndex == 0 {
		return false
	}
	s.currentIndex--
	return true
}

// ToggleMark flips the cosmetic bookmark on a question index and returns
// the new marked state.
func (s *Session) ToggleMark(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.questions) {
		return false
	}
	if s.marked[index] {
		delete(s.marked, index)
		return false
	}
	s.marked[index] = true
	return true
}

// BeginSubmit is the single gate out of InProgress. It returns true for
// exactly one caller per session; a second submit attempt (double click,
// timeout racing a manual submit) is suppressed. The countdown stops here.
func (s *Session) BeginSubmit(completionType string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return false
	}
	s.state = StateSubmitting
	s.completionType = completionType
	s.stopTimerLocked()
	return true
}

// Finalize moves Submitting -> Terminal after the result write (or its
// deliberate skip) has happened.
func (s *Session) Finalize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		s.state = StateTerminal
	}
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CompletionType is empty until BeginSubmit has run.
func (s *Session) CompletionType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completionType
}

// Shortened reports whether the pool could not cover the requested total.
func (s *Session) Shortened() bool {
	return s.shortened
}

// QuestionCount is the actual number of questions in this session.
func (s *Session) QuestionCount() int {
	return len(s.questions)
}

// CurrentView describes what the examinee sees right now. The correct
// answer for the current question is only revealed once it was answered,
// mirroring the answer-then-reveal flow of the exam UI.
type CurrentView struct {
	Index            int              `json:"index"`
	Total            int              `json:"total"`
	Question         *models.Question `json:"question"`
	SelectedAnswer   *string          `json:"selected_answer"`
	Marked           bool             `json:"marked"`
	RemainingSeconds int              `json:"remaining_seconds"`
	State            State            `json:"state"`
}

// Current returns the view of the current question.
func (s *Session) Current() CurrentView {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := CurrentView{
		Index:            s.currentIndex,
		Total:            len(s.questions),
		RemainingSeconds: s.remainingSeconds,
		State:            s.state,
	}
	if s.currentIndex < len(s.questions) {
		q := s.questions[s.currentIndex]
		if ans, ok := s.answers[s.currentIndex]; ok {
			a := ans
			view.SelectedAnswer = &a
		} else {
			// Hide the key until the question is answered.
			q.CorrectAnswer = ""
			q.Explanation = ""
			q.ExplanationImages = nil
		}
		view.Question = &q
		view.Marked = s.marked[s.currentIndex]
	}
	return view
}
