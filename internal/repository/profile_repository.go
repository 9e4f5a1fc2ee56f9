package repository

import (
	"time"

	"vibestudy/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// FindByID returns gorm.ErrRecordNotFound when no profile exists yet; callers
// treat that as the signal to synthesize one.
func (r *ProfileRepository) FindByID(id string) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Create(profile *model.Profile) error {
	return r.DB.Create(profile).Error
}

// UpdateFields applies a partial update and returns the stored row.
func (r *ProfileRepository) UpdateFields(id string, fields map[string]interface{}) (*model.Profile, error) {
	fields["updated_at"] = time.Now()
	err := r.DB.Model(&model.Profile{}).
		Where("id = ?", id).
		Updates(fields).
		Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

// AddXP adds amount to total_xp and recomputes level in the same transaction,
// so the level invariant can never be observed broken.
func (r *ProfileRepository) AddXP(id string, amount int) (*model.Profile, error) {
	var updated model.Profile
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var profile model.Profile
		if err := tx.First(&profile, "id = ?", id).Error; err != nil {
			return err
		}

		newXP := profile.TotalXP + amount
		if newXP < 0 {
			newXP = 0
		}

		if err := tx.Model(&model.Profile{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"total_xp":   newXP,
				"level":      model.LevelForXP(newXP),
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		return tx.First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ProfileRepository) UpdateStreak(id string, current, longest int) error {
	return r.DB.Model(&model.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_streak": current,
			"longest_streak": longest,
			"updated_at":     time.Now(),
		}).Error
}

func (r *ProfileRepository) FindTopByXP(limit int) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.DB.Order("total_xp DESC").Limit(limit).Find(&profiles).Error
	return profiles, err
}
