package repository

import (
	"vibestudy/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUser(userID string) ([]model.CourseProgress, error) {
	var rows []model.CourseProgress
	err := r.DB.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) FindByUserAndCourse(userID, courseID string) (*model.CourseProgress, error) {
	var row model.CourseProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert inserts or updates the (user, course) row and returns the stored
// state, which callers adopt verbatim.
func (r *ProgressRepository) Upsert(p *model.CourseProgress) (*model.CourseProgress, error) {
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_day", "completed_days", "last_activity", "updated_at",
		}),
	}).Create(p).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUserAndCourse(p.UserID, p.CourseID)
}
