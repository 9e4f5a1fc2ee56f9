package service

import (
	"errors"
	"sort"
	"time"

	"vibestudy/internal/model"
	"vibestudy/internal/repository"
	"vibestudy/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressService implements the per-course completion state machine:
// completed_days only ever grows, current_day never regresses through
// completion, and task completions award XP exactly once per key.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	TaskRepo     *repository.TaskRepository
	CourseRepo   *repository.CourseRepository
	Profiles     *ProfileService
	TaskXP       int
}

func NewProgressService(progressRepo *repository.ProgressRepository, taskRepo *repository.TaskRepository, courseRepo *repository.CourseRepository, profiles *ProfileService, taskXP int) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		TaskRepo:     taskRepo,
		CourseRepo:   courseRepo,
		Profiles:     profiles,
		TaskXP:       taskXP,
	}
}

// ProgressSnapshot is the bulk view one fetch returns: every course-progress
// row keyed by course plus the full completed-task ledger.
type ProgressSnapshot struct {
	CourseProgress map[string]model.CourseProgress `json:"courseProgress"`
	CompletedTasks []model.CompletedTask           `json:"completedTasks"`
	LastSync       time.Time                       `json:"lastSync"`
}

func (s *ProgressService) FetchProgress(userID string) (*ProgressSnapshot, error) {
	rows, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.TaskRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	byCourse := make(map[string]model.CourseProgress, len(rows))
	for _, row := range rows {
		byCourse[row.CourseID] = row
	}

	return &ProgressSnapshot{
		CourseProgress: byCourse,
		CompletedTasks: tasks,
		LastSync:       time.Now(),
	}, nil
}

func (s *ProgressService) GetProgress(userID, courseID string) (*model.CourseProgress, error) {
	row, err := s.ProgressRepo.FindByUserAndCourse(userID, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return row, err
}

// GetCompletedDays returns an empty slice when no progress row exists.
func (s *ProgressService) GetCompletedDays(userID, courseID string) ([]int, error) {
	row, err := s.GetProgress(userID, courseID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return []int{}, nil
	}
	return []int(row.CompletedDays), nil
}

func (s *ProgressService) IsLessonCompleted(userID, courseID string, day int) (bool, error) {
	days, err := s.GetCompletedDays(userID, courseID)
	if err != nil {
		return false, err
	}
	for _, d := range days {
		if d == day {
			return true, nil
		}
	}
	return false, nil
}

func (s *ProgressService) IsTaskCompleted(userID, courseID string, day, taskID int) (bool, error) {
	_, err := s.TaskRepo.FindByKey(userID, courseID, day, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CompleteLesson marks a day complete. Completing an already-complete day is
// a no-op; otherwise the day set is the sorted, deduplicated union and
// current_day advances to max(day+1, existing) so it never moves backwards,
// whatever order lessons are finished in. Local state is only replaced with
// the row the store confirmed.
func (s *ProgressService) CompleteLesson(userID, courseID string, day int) (*model.CourseProgress, error) {
	if err := s.validateDay(courseID, day); err != nil {
		return nil, err
	}

	existing, err := s.GetProgress(userID, courseID)
	if err != nil {
		return nil, err
	}

	currentDay := 1
	var completedDays []int
	if existing != nil {
		if existing.HasDay(day) {
			return existing, nil
		}
		currentDay = existing.CurrentDay
		completedDays = existing.CompletedDays
	}

	newDays := mergeDays(completedDays, day)
	if day+1 > currentDay {
		currentDay = day + 1
	}

	return s.ProgressRepo.Upsert(&model.CourseProgress{
		UserID:        userID,
		CourseID:      courseID,
		CurrentDay:    currentDay,
		CompletedDays: datatypes.NewJSONSlice(newDays),
		LastActivity:  time.Now(),
	})
}

// CompleteTask upserts the (user, course, day, task) row; a re-submission
// overwrites code and timestamp in place. Profile XP is credited the fixed
// reward exactly once for the key, so the returned award is zero on repeats.
func (s *ProgressService) CompleteTask(userID, courseID string, day, taskID int, code *string) (int, *model.CompletedTask, error) {
	if err := s.validateDay(courseID, day); err != nil {
		return 0, nil, err
	}

	alreadyDone, err := s.IsTaskCompleted(userID, courseID, day, taskID)
	if err != nil {
		return 0, nil, err
	}

	row, err := s.TaskRepo.Upsert(&model.CompletedTask{
		UserID:      userID,
		CourseID:    courseID,
		Day:         day,
		TaskID:      taskID,
		Code:        code,
		XPEarned:    s.TaskXP,
		CompletedAt: time.Now(),
	})
	if err != nil {
		return 0, nil, err
	}

	if alreadyDone {
		return 0, row, nil
	}

	if _, err := s.Profiles.AddXP(userID, s.TaskXP); err != nil {
		return 0, row, err
	}
	return s.TaskXP, row, nil
}

// UpdateCurrentDay moves the navigation pointer without completing anything.
// The stored value is clamped so it never drops below the highest completed
// day, keeping current_day >= max(completed_days) intact.
func (s *ProgressService) UpdateCurrentDay(userID, courseID string, day int) (*model.CourseProgress, error) {
	if err := s.validateDay(courseID, day); err != nil {
		return nil, err
	}

	existing, err := s.GetProgress(userID, courseID)
	if err != nil {
		return nil, err
	}

	var completedDays datatypes.JSONSlice[int]
	if existing != nil {
		completedDays = existing.CompletedDays
		if max := existing.MaxCompletedDay(); day < max {
			day = max
		}
	}

	return s.ProgressRepo.Upsert(&model.CourseProgress{
		UserID:        userID,
		CourseID:      courseID,
		CurrentDay:    day,
		CompletedDays: completedDays,
		LastActivity:  time.Now(),
	})
}

func (s *ProgressService) validateDay(courseID string, day int) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrCourseNotFound
	}
	if err != nil {
		return err
	}
	if day < 1 || day > course.DurationDays {
		return util.ErrInvalidDay
	}
	return nil
}

func mergeDays(days []int, day int) []int {
	seen := make(map[int]bool, len(days)+1)
	merged := make([]int, 0, len(days)+1)
	for _, d := range append(append([]int{}, days...), day) {
		if !seen[d] {
			seen[d] = true
			merged = append(merged, d)
		}
	}
	sort.Ints(merged)
	return merged
}
