package repository

import (
	"vibestudy/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("id ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}
