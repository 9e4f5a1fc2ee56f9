package model

import (
	"time"
)

// User is the authentication record. Gamification state lives in Profile.
// swagger:model User
type User struct {
	UUIDBase
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	FullName  string    `gorm:"size:100" json:"fullName"`
	AvatarURL string    `gorm:"size:255" json:"avatarUrl"`
	LastLogin time.Time `json:"lastLogin"`
	LastSeen  time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
