package model

import (
	"time"
)

// Profile is the denormalized gamification record, one per user. It is
// synthesized with zero counters on first authenticated request and never
// deleted by this service.
// swagger:model Profile
type Profile struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username      *string   `gorm:"size:50;uniqueIndex" json:"username"`
	FullName      *string   `gorm:"size:100" json:"fullName"`
	AvatarURL     *string   `gorm:"size:255" json:"avatarUrl"`
	CurrentStreak int       `gorm:"default:0" json:"currentStreak"`
	LongestStreak int       `gorm:"default:0" json:"longestStreak"`
	TotalXP       int       `gorm:"default:0" json:"totalXp"`
	Level         int       `gorm:"default:1" json:"level"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Profile) TableName() string {
	return "profiles"
}

// XPPerLevel is the XP span of a single level.
const XPPerLevel = 1000

// LevelForXP derives the level from total XP. Level and TotalXP are never
// written independently of this rule.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}
