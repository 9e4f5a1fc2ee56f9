package repository

import (
	"time"

	"vibestudy/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) FindByUser(userID string) ([]model.CompletedTask, error) {
	var rows []model.CompletedTask
	err := r.DB.Where("user_id = ?", userID).Order("completed_at ASC").Find(&rows).Error
	return rows, err
}

func (r *TaskRepository) FindByKey(userID, courseID string, day, taskID int) (*model.CompletedTask, error) {
	var row model.CompletedTask
	err := r.DB.Where(
		"user_id = ? AND course_id = ? AND day = ? AND task_id = ?",
		userID, courseID, day, taskID,
	).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert overwrites any existing row for the (user, course, day, task) key,
// so re-submissions can never produce duplicates.
func (r *TaskRepository) Upsert(t *model.CompletedTask) (*model.CompletedTask, error) {
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "course_id"}, {Name: "day"}, {Name: "task_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"code", "completed_at", "updated_at",
		}),
	}).Create(t).Error
	if err != nil {
		return nil, err
	}
	return r.FindByKey(t.UserID, t.CourseID, t.Day, t.TaskID)
}

func (r *TaskRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CompletedTask{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CompletedSince returns tasks completed at or after the given time, for the
// weekly activity view.
func (r *TaskRepository) CompletedSince(userID string, since time.Time) ([]model.CompletedTask, error) {
	var rows []model.CompletedTask
	err := r.DB.Where("user_id = ? AND completed_at >= ?", userID, since).Find(&rows).Error
	return rows, err
}
