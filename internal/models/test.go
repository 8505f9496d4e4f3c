package models

import "time"

// TestDefinition is the administrator-authored configuration a session is
// assembled from. Read-only to the session runner.
type TestDefinition struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	Name            string    `bson:"name" json:"name"`
	MainSection     string    `bson:"main_section" json:"main_section"`
	SubSection      string    `bson:"sub_section" json:"sub_section"`
	Category        string    `bson:"category" json:"category"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	TotalQuestions  int       `bson:"total_questions" json:"total_questions"`
	PassingScore    int       `bson:"passing_score" json:"passing_score"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}
