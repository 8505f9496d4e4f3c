package models

import "time"

// QuestionSnapshot freezes one question as the examinee saw it, so a stored
// result stays readable even after the question bank changes.
// SelectedAnswer is nil when the question was never answered; this is
// distinct from choosing an option that happens to be the empty string.
type QuestionSnapshot struct {
	QuestionText      string   `bson:"question_text" json:"question_text"`
	Options           []string `bson:"options" json:"options"`
	CorrectAnswer     string   `bson:"correct_answer" json:"correct_answer"`
	SelectedAnswer    *string  `bson:"selected_answer" json:"selected_answer"`
	Images            []string `bson:"images,omitempty" json:"images,omitempty"`
	Explanation       string   `bson:"explanation,omitempty" json:"explanation,omitempty"`
	ExplanationImages []string `bson:"explanation_images,omitempty" json:"explanation_images,omitempty"`
}

// Answered reports whether the examinee recorded any answer at all.
func (s *QuestionSnapshot) Answered() bool {
	return s.SelectedAnswer != nil
}

// TestResult is the durable record of a completed or timed-out session.
// Category identifiers and the test name are denormalized on purpose.
type TestResult struct {
	ID               string             `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"user_id" json:"user_id"`
	CorrectAnswers   int                `bson:"correct_answers" json:"correct_answers"`
	TotalQuestions   int                `bson:"total_questions" json:"total_questions"`
	ResultPercentage int                `bson:"result_percentage" json:"result_percentage"`
	Passed           bool               `bson:"passed" json:"passed"`
	MainSection      string             `bson:"main_section" json:"main_section"`
	SubSection       string             `bson:"sub_section" json:"sub_section"`
	Category         string             `bson:"category" json:"category"`
	TestName         string             `bson:"test_name" json:"test_name"`
	CompletionType   string             `bson:"completion_type" json:"completion_type"`
	SubmittedAt      time.Time          `bson:"submitted_at" json:"submitted_at"`
	Questions        []QuestionSnapshot `bson:"questions" json:"questions"`
}
