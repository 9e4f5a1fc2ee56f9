package model

import (
	"time"
)

// CompletedTask is one row per (user, course, day, task). Re-submission
// overwrites the row in place; XP is accrued only on the first completion.
// swagger:model CompletedTask
type CompletedTask struct {
	BaseModel
	UserID      string    `gorm:"size:36;not null;uniqueIndex:idx_user_course_day_task" json:"userId"`
	CourseID    string    `gorm:"size:50;not null;uniqueIndex:idx_user_course_day_task" json:"courseId"`
	Day         int       `gorm:"not null;uniqueIndex:idx_user_course_day_task" json:"day"`
	TaskID      int       `gorm:"not null;uniqueIndex:idx_user_course_day_task" json:"taskId"`
	Code        *string   `gorm:"type:text" json:"code"`
	XPEarned    int       `gorm:"default:0" json:"xpEarned"`
	CompletedAt time.Time `json:"completedAt"`
}

func (CompletedTask) TableName() string {
	return "completed_tasks"
}
