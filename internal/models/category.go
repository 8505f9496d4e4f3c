package models

import "time"

// The category hierarchy has three levels: main sections contain
// sub sections, sub sections contain categories. Both question bank
// entries and test definitions are scoped by the full triple.

type MainSection struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type SubSection struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	MainSectionID string    `bson:"main_section_id" json:"main_section_id"`
	Name          string    `bson:"name" json:"name"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

type Category struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	MainSectionID string    `bson:"main_section_id" json:"main_section_id"`
	SubSectionID  string    `bson:"sub_section_id" json:"sub_section_id"`
	Name          string    `bson:"name" json:"name"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
