package model

import "gorm.io/datatypes"

// Course is one language curriculum, identified by a short slug ("python").
// swagger:model Course
type Course struct {
	ID          string                      `gorm:"primaryKey;size:50" json:"id"`
	Language    string                      `gorm:"size:50;not null" json:"language"`
	Title       string                      `gorm:"size:100;not null" json:"title"`
	Description string                      `gorm:"size:500" json:"description"`
	DurationDays int                        `gorm:"default:90" json:"durationDays"`
	CareerPaths datatypes.JSONSlice[string] `json:"careerPaths"`
}

func (Course) TableName() string {
	return "courses"
}
