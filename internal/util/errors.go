package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCourseNotFound     = errors.New("course not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrInvalidDay         = errors.New("day is out of range for this course")
)
