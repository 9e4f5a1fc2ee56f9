package model

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// GeneratedTask is one exercise inside a generated lesson.
// swagger:model GeneratedTask
type GeneratedTask struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Difficulty   Difficulty `json:"difficulty"`
	CodeTemplate string     `json:"codeTemplate,omitempty"`
}

// GeneratedLesson is AI-generated (or mock) content for one (course, day).
// It lives in the cache layers only, never in the relational store.
// swagger:model GeneratedLesson
type GeneratedLesson struct {
	CourseID    string          `json:"courseId"`
	Day         int             `json:"day"`
	Theory      string          `json:"theory"`
	Tasks       []GeneratedTask `json:"tasks"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// DailyChallenge is the standalone challenge shown on the challenges page.
// swagger:model DailyChallenge
type DailyChallenge struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Difficulty   Difficulty `json:"difficulty"`
	Requirements []string   `json:"requirements"`
}
