package models

import "time"

// Notification is an admin-authored message shown to students.
// Target is "all" or a specific user id.
type Notification struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Target    string    `bson:"target" json:"target"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
