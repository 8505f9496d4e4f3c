package models

import (
	"errors"
	"time"
)

// Question is one entry in the question bank, scoped to a
// (main section, sub section, category) triple.
type Question struct {
	ID                string    `bson:"_id,omitempty" json:"id"`
	MainSection       string    `bson:"main_section" json:"main_section"`
	SubSection        string    `bson:"sub_section" json:"sub_section"`
	Category          string    `bson:"category" json:"category"`
	QuestionText      string    `bson:"question_text" json:"question_text"`
	Options           []string  `bson:"options" json:"options"`
	CorrectAnswer     string    `bson:"correct_answer" json:"correct_answer"`
	Images            []string  `bson:"images,omitempty" json:"images,omitempty"`
	Explanation       string    `bson:"explanation,omitempty" json:"explanation,omitempty"`
	ExplanationImages []string  `bson:"explanation_images,omitempty" json:"explanation_images,omitempty"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}

var (
	ErrQuestionTextRequired = errors.New("question text is required")
	ErrOptionCount          = errors.New("a question needs between 2 and 5 options")
	ErrCorrectNotAnOption   = errors.New("correct answer must be one of the options")
)

// Validate enforces the question bank invariants before a write.
func (q *Question) Validate() error {
	if q.QuestionText == "" {
		return ErrQuestionTextRequired
	}
	if len(q.Options) < 2 || len(q.Options) > 5 {
		return ErrOptionCount
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return nil
		}
	}
	return ErrCorrectNotAnOption
}
