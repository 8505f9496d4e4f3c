package exam

import (
	"math"
	"time"

	"exam-service/internal/models"
)

// RoundPercent computes round(100*correct/total) with half rounded away
// from zero, so 2 of 3 correct (66.67) becomes 67.
func RoundPercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// BuildResult freezes the session into a persistable record. Every selected
// question is snapshotted whether or not it was answered; an unanswered
// question carries a nil SelectedAnswer, never an empty string.
func (s *Session) BuildResult(now time.Time) *models.TestResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	percentage := RoundPercent(s.correctCount, len(s.questions))
	result := &models.TestResult{
		UserID:           s.UserID,
		CorrectAnswers:   s.correctCount,
		TotalQuestions:   len(s.questions),
		ResultPercentage: percentage,
		Passed:           percentage >= s.Definition.PassingScore,
		MainSection:      s.Definition.MainSection,
		SubSection:       s.Definition.SubSection,
		Category:         s.Definition.Category,
		TestName:         s.Definition.Name,
		CompletionType:   s.completionType,
		SubmittedAt:      now,
		Questions:        make([]models.QuestionSnapshot, len(s.questions)),
	}

	for i, q := range s.questions {
		snap := models.QuestionSnapshot{
			QuestionText:      q.QuestionText,
			Options:           q.Options,
			CorrectAnswer:     q.CorrectAnswer,
			Images:            q.Images,
			Explanation:       q.Explanation,
			ExplanationImages: q.ExplanationImages,
		}
		if ans, ok := s.answers[i]; ok {
			a := ans
			snap.SelectedAnswer = &a
		}
		result.Questions[i] = snap
	}
	return result
}
