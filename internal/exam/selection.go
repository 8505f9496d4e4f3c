package exam

import (
	"errors"
	"math/rand"

	"exam-service/internal/models"
)

var ErrEmptyQuestionPool = errors.New("no questions available for this test")

// QuestionSet is the prepared selection for one session. Shortened is set
// when the pool had fewer questions than the test definition asked for;
// the session then runs with everything that was available.
type QuestionSet struct {
	Questions []models.Question
	Requested int
	Shortened bool
}

// PrepareQuestionSet draws total questions from pool without replacement,
// in uniformly random order. Fairness is the concern here, not security,
// so math/rand is fine.
func PrepareQuestionSet(pool []models.Question, total int, rng *rand.Rand) (*QuestionSet, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyQuestionPool
	}

	selected := make([]models.Question, len(pool))
	copy(selected, pool)
	rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	set := &QuestionSet{Requested: total}
	if total < len(selected) {
		selected = selected[:total]
	} else if total > len(selected) {
		set.Shortened = true
	}
	set.Questions = selected
	return set, nil
}
