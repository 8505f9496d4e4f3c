package exam

import (
	"sort"

	"exam-service/internal/models"
)

// SessionState is the serializable form of a session, written through to
// the progress cache after every mutation so an in-flight exam survives a
// process restart. It never reaches the result store.
type SessionState struct {
	ID               string                `json:"id"`
	UserID           string                `json:"user_id"`
	Definition       models.TestDefinition `json:"definition"`
	Questions        []models.Question     `json:"questions"`
	Shortened        bool                  `json:"shortened"`
	State            State                 `json:"state"`
	CurrentIndex     int                   `json:"current_index"`
	Answers          map[int]string        `json:"answers"`
	Marked           []int                 `json:"marked"`
	CorrectCount     int                   `json:"correct_count"`
	RemainingSeconds int                   `json:"remaining_seconds"`
}

// Snapshot captures the full session state under the lock.
func (s *Session) Snapshot() *SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make(map[int]string, len(s.answers))
	for i, a := range s.answers {
		answers[i] = a
	}
	marked := make([]int, 0, len(s.marked))
	for i := range s.marked {
		marked = append(marked, i)
	}
	sort.Ints(marked)

	return &SessionState{
		ID:               s.ID,
		UserID:           s.UserID,
		Definition:       s.Definition,
		Questions:        s.questions,
		Shortened:        s.shortened,
		State:            s.state,
		CurrentIndex:     s.currentIndex,
		Answers:          answers,
		Marked:           marked,
		CorrectCount:     s.correctCount,
		RemainingSeconds: s.remainingSeconds,
	}
}

// FromState rebuilds a live session from a cached snapshot. The countdown
// is not running afterwards; the caller restarts it.
func FromState(st *SessionState) *Session {
	s := &Session{
		ID:               st.ID,
		UserID:           st.UserID,
		Definition:       st.Definition,
		questions:        st.Questions,
		shortened:        st.Shortened,
		state:            st.State,
		currentIndex:     st.CurrentIndex,
		answers:          make(map[int]string, len(st.Answers)),
		marked:           make(map[int]bool, len(st.Marked)),
		correctCount:     st.CorrectCount,
		remainingSeconds: st.RemainingSeconds,
	}
	for i, a := range st.Answers {
		s.answers[i] = a
	}
	for _, i := range st.Marked {
		s.marked[i] = true
	}
	return s
}
