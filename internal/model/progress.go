package model

import (
	"time"

	"gorm.io/datatypes"
)

// CourseProgress is one row per (user, course). CompletedDays is kept sorted
// and deduplicated; days are never removed, and CurrentDay never regresses
// through lesson completion.
// swagger:model CourseProgress
type CourseProgress struct {
	BaseModel
	UserID        string                   `gorm:"size:36;not null;uniqueIndex:idx_user_course" json:"userId"`
	CourseID      string                   `gorm:"size:50;not null;uniqueIndex:idx_user_course" json:"courseId"`
	CurrentDay    int                      `gorm:"default:1" json:"currentDay"`
	CompletedDays datatypes.JSONSlice[int] `json:"completedDays"`
	LastActivity  time.Time                `json:"lastActivity"`
}

func (CourseProgress) TableName() string {
	return "user_progress"
}

// MaxCompletedDay returns 0 when no day is completed.
func (p *CourseProgress) MaxCompletedDay() int {
	max := 0
	for _, d := range p.CompletedDays {
		if d > max {
			max = d
		}
	}
	return max
}

// HasDay reports whether day is already in CompletedDays.
func (p *CourseProgress) HasDay(day int) bool {
	for _, d := range p.CompletedDays {
		if d == day {
			return true
		}
	}
	return false
}
