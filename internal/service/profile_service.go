package service

import (
	"errors"
	"time"

	"vibestudy/internal/model"
	"vibestudy/internal/repository"

	"gorm.io/gorm"
)

// ProfileService owns the gamification record: XP, derived level and streaks.
type ProfileService struct {
	ProfileRepo *repository.ProfileRepository
	UserRepo    *repository.UserRepository
	CheckinRepo *repository.CheckinRepository
}

func NewProfileService(profileRepo *repository.ProfileRepository, userRepo *repository.UserRepository, checkinRepo *repository.CheckinRepository) *ProfileService {
	return &ProfileService{
		ProfileRepo: profileRepo,
		UserRepo:    userRepo,
		CheckinRepo: checkinRepo,
	}
}

// GetOrCreate fetches the user's profile, synthesizing one from the auth
// record on first access. Not-found is expected here, not an error.
func (s *ProfileService) GetOrCreate(userID string) (*model.Profile, error) {
	profile, err := s.ProfileRepo.FindByID(userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = &model.Profile{
		ID:            userID,
		CurrentStreak: 0,
		LongestStreak: 0,
		TotalXP:       0,
		Level:         1,
	}

	if user, err := s.UserRepo.FindByID(userID); err == nil {
		if user.FullName != "" {
			profile.FullName = &user.FullName
		}
		if user.AvatarURL != "" {
			profile.AvatarURL = &user.AvatarURL
		}
	}

	if err := s.ProfileRepo.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ProfileUpdate carries the caller-editable subset of profile fields.
type ProfileUpdate struct {
	Username  *string
	FullName  *string
	AvatarURL *string
}

func (s *ProfileService) UpdateProfile(userID string, updates ProfileUpdate) (*model.Profile, error) {
	if _, err := s.GetOrCreate(userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if updates.Username != nil {
		fields["username"] = *updates.Username
	}
	if updates.FullName != nil {
		fields["full_name"] = *updates.FullName
	}
	if updates.AvatarURL != nil {
		fields["avatar_url"] = *updates.AvatarURL
	}

	return s.ProfileRepo.UpdateFields(userID, fields)
}

// AddXP accepts any integer amount; negative deltas are a caller policy
// decision. Total XP never drops below zero and level always tracks it.
func (s *ProfileService) AddXP(userID string, amount int) (*model.Profile, error) {
	if _, err := s.GetOrCreate(userID); err != nil {
		return nil, err
	}
	return s.ProfileRepo.AddXP(userID, amount)
}

// RecordActivity registers the first request of a calendar day as a checkin
// and maintains the streak counters. Subsequent calls the same day are no-ops.
func (s *ProfileService) RecordActivity(userID string) error {
	now := time.Now()

	if _, err := s.CheckinRepo.FindByUserAndDate(userID, now); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	profile, err := s.GetOrCreate(userID)
	if err != nil {
		return err
	}

	streak := 1
	if latest, err := s.CheckinRepo.FindLatestByUser(userID); err == nil {
		if sameDay(latest.CheckinAt.AddDate(0, 0, 1), now) {
			streak = latest.StreakDays + 1
		}
	}

	if err := s.CheckinRepo.Create(&model.Checkin{
		UserID:     userID,
		CheckinAt:  now,
		StreakDays: streak,
	}); err != nil {
		return err
	}

	longest := profile.LongestStreak
	if streak > longest {
		longest = streak
	}
	return s.ProfileRepo.UpdateStreak(userID, streak, longest)
}

// UpdateLastSeen satisfies the activity middleware.
func (s *ProfileService) UpdateLastSeen(userID string) error {
	return s.UserRepo.UpdateLastSeen(userID)
}

func (s *ProfileService) Leaderboard(limit int) ([]model.Profile, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.ProfileRepo.FindTopByXP(limit)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
