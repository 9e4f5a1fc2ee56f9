package repository

import (
	"time"

	"vibestudy/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

func (r *UserRepository) UpdateLastSeen(userID string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}
