package model

import (
	"time"
)

// Checkin records one active calendar day per user; streak counters on the
// profile are derived from consecutive checkins.
// swagger:model Checkin
type Checkin struct {
	BaseModel
	UserID     string    `gorm:"size:36;not null;index" json:"userId"`
	CheckinAt  time.Time `gorm:"not null" json:"checkinAt"`
	StreakDays int       `gorm:"default:1" json:"streakDays"`
}

func (Checkin) TableName() string {
	return "checkins"
}
