package repository

import (
	"time"

	"vibestudy/internal/model"

	"gorm.io/gorm"
)

type CheckinRepository struct {
	DB *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{DB: db}
}

func (r *CheckinRepository) Create(checkin *model.Checkin) error {
	return r.DB.Create(checkin).Error
}

// FindByUserAndDate reports whether the user already checked in on the given
// calendar day.
func (r *CheckinRepository) FindByUserAndDate(userID string, date time.Time) (*model.Checkin, error) {
	var checkin model.Checkin
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour).Add(-1 * time.Nanosecond)

	err := r.DB.Where("user_id = ? AND checkin_at BETWEEN ? AND ?", userID, startOfDay, endOfDay).First(&checkin).Error
	if err != nil {
		return nil, err
	}
	return &checkin, nil
}

func (r *CheckinRepository) FindLatestByUser(userID string) (*model.Checkin, error) {
	var checkin model.Checkin
	err := r.DB.Where("user_id = ?", userID).Order("checkin_at DESC").First(&checkin).Error
	if err != nil {
		return nil, err
	}
	return &checkin, nil
}

func (r *CheckinRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Checkin{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
