package service

import (
	"time"

	"vibestudy/internal/model"
	"vibestudy/internal/repository"
)

// DashboardService derives the read-only views the dashboards render from
// progress, tasks and profiles. Nothing here mutates state.
type DashboardService struct {
	ProgressRepo *repository.ProgressRepository
	TaskRepo     *repository.TaskRepository
	CourseRepo   *repository.CourseRepository
	Profiles     *ProfileService
}

func NewDashboardService(progressRepo *repository.ProgressRepository, taskRepo *repository.TaskRepository, courseRepo *repository.CourseRepository, profiles *ProfileService) *DashboardService {
	return &DashboardService{
		ProgressRepo: progressRepo,
		TaskRepo:     taskRepo,
		CourseRepo:   courseRepo,
		Profiles:     profiles,
	}
}

type CourseOverview struct {
	CourseID      string  `json:"courseId"`
	Title         string  `json:"title"`
	Language      string  `json:"language"`
	CurrentDay    int     `json:"currentDay"`
	CompletedDays int     `json:"completedDays"`
	DurationDays  int     `json:"durationDays"`
	Percent       float64 `json:"percent"`
}

type Dashboard struct {
	Profile        *model.Profile   `json:"profile"`
	Courses        []CourseOverview `json:"courses"`
	TasksCompleted int64            `json:"tasksCompleted"`
	LastActivity   *time.Time       `json:"lastActivity"`
}

func (s *DashboardService) GetDashboard(userID string) (*Dashboard, error) {
	profile, err := s.Profiles.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	courses, err := s.CourseRepo.FindAll()
	if err != nil {
		return nil, err
	}

	rows, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	byCourse := make(map[string]model.CourseProgress, len(rows))
	for _, row := range rows {
		byCourse[row.CourseID] = row
	}

	var lastActivity *time.Time
	overviews := make([]CourseOverview, 0, len(courses))
	for _, course := range courses {
		overview := CourseOverview{
			CourseID:     course.ID,
			Title:        course.Title,
			Language:     course.Language,
			CurrentDay:   1,
			DurationDays: course.DurationDays,
		}
		if row, ok := byCourse[course.ID]; ok {
			overview.CurrentDay = row.CurrentDay
			overview.CompletedDays = len(row.CompletedDays)
			if course.DurationDays > 0 {
				overview.Percent = float64(overview.CompletedDays) / float64(course.DurationDays) * 100
			}
			if lastActivity == nil || row.LastActivity.After(*lastActivity) {
				t := row.LastActivity
				lastActivity = &t
			}
		}
		overviews = append(overviews, overview)
	}

	tasksCompleted, err := s.TaskRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Profile:        profile,
		Courses:        overviews,
		TasksCompleted: tasksCompleted,
		LastActivity:   lastActivity,
	}, nil
}

type DayActivity struct {
	Date  string `json:"date"`
	Tasks int    `json:"tasks"`
}

// GetWeeklyActivity buckets the last seven days of task completions by
// calendar date, oldest first.
func (s *DashboardService) GetWeeklyActivity(userID string) ([]DayActivity, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)

	tasks, err := s.TaskRepo.CompletedSince(userID, start)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, 7)
	for _, task := range tasks {
		counts[task.CompletedAt.Format("2006-01-02")]++
	}

	days := make([]DayActivity, 0, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		days = append(days, DayActivity{Date: date, Tasks: counts[date]})
	}
	return days, nil
}
