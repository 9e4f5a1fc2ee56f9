package service

import (
	"testing"
	"time"

	"vibestudy/internal/model"
	"vibestudy/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProfileService(t *testing.T) (*ProfileService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	profiles := NewProfileService(
		repository.NewProfileRepository(db),
		repository.NewUserRepository(db),
		repository.NewCheckinRepository(db),
	)
	return profiles, db
}

func TestGetOrCreateSynthesizesProfile(t *testing.T) {
	profiles, db := newProfileService(t)

	require.NoError(t, db.Create(&model.User{
		UUIDBase:  model.UUIDBase{ID: "user-1"},
		Email:     "ada@example.com",
		Password:  "hashed",
		FullName:  "Ada Lovelace",
		AvatarURL: "https://cdn.example.com/ada.png",
	}).Error)

	profile, err := profiles.GetOrCreate("user-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", profile.ID)
	assert.Equal(t, 0, profile.TotalXP)
	assert.Equal(t, 1, profile.Level)
	assert.Equal(t, 0, profile.CurrentStreak)
	require.NotNil(t, profile.FullName)
	assert.Equal(t, "Ada Lovelace", *profile.FullName)

	// Second call returns the stored row, not a fresh synthesis.
	again, err := profiles.GetOrCreate("user-1")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)
	assert.Equal(t, profile.CreatedAt.Unix(), again.CreatedAt.Unix())
}

func TestGetOrCreateWithoutUserRecord(t *testing.T) {
	profiles, _ := newProfileService(t)

	profile, err := profiles.GetOrCreate("ghost")
	require.NoError(t, err)
	assert.Equal(t, "ghost", profile.ID)
	assert.Nil(t, profile.FullName)
}

func TestAddXPUpdatesLevel(t *testing.T) {
	profiles, _ := newProfileService(t)

	profile, err := profiles.AddXP("user-1", 950)
	require.NoError(t, err)
	assert.Equal(t, 950, profile.TotalXP)
	assert.Equal(t, 1, profile.Level)

	profile, err = profiles.AddXP("user-1", 100)
	require.NoError(t, err)
	assert.Equal(t, 1050, profile.TotalXP)
	assert.Equal(t, 2, profile.Level)
}

func TestAddXPNegativeClampsAtZero(t *testing.T) {
	profiles, _ := newProfileService(t)

	_, err := profiles.AddXP("user-1", 500)
	require.NoError(t, err)

	profile, err := profiles.AddXP("user-1", -2000)
	require.NoError(t, err)
	assert.Equal(t, 0, profile.TotalXP)
	assert.Equal(t, 1, profile.Level)
}

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, model.LevelForXP(0))
	assert.Equal(t, 1, model.LevelForXP(999))
	assert.Equal(t, 2, model.LevelForXP(1000))
	assert.Equal(t, 3, model.LevelForXP(2500))
	assert.Equal(t, 1, model.LevelForXP(-50))
}

func TestUpdateProfilePartialFields(t *testing.T) {
	profiles, _ := newProfileService(t)

	username := "ada"
	profile, err := profiles.UpdateProfile("user-1", ProfileUpdate{Username: &username})
	require.NoError(t, err)
	require.NotNil(t, profile.Username)
	assert.Equal(t, "ada", *profile.Username)
	assert.Nil(t, profile.FullName)

	fullName := "Ada L."
	profile, err = profiles.UpdateProfile("user-1", ProfileUpdate{FullName: &fullName})
	require.NoError(t, err)
	require.NotNil(t, profile.Username)
	assert.Equal(t, "ada", *profile.Username, "untouched fields must survive")
	require.NotNil(t, profile.FullName)
	assert.Equal(t, "Ada L.", *profile.FullName)
}

func TestRecordActivitySameDayNoOp(t *testing.T) {
	profiles, db := newProfileService(t)

	require.NoError(t, profiles.RecordActivity("user-1"))
	require.NoError(t, profiles.RecordActivity("user-1"))

	var count int64
	require.NoError(t, db.Model(&model.Checkin{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	profile, err := profiles.GetOrCreate("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.CurrentStreak)
	assert.Equal(t, 1, profile.LongestStreak)
}

func TestRecordActivityExtendsStreak(t *testing.T) {
	profiles, db := newProfileService(t)

	// Yesterday's checkin with a 3-day streak already on record.
	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Create(&model.Checkin{
		UserID:     "user-1",
		CheckinAt:  yesterday,
		StreakDays: 3,
	}).Error)

	require.NoError(t, profiles.RecordActivity("user-1"))

	profile, err := profiles.GetOrCreate("user-1")
	require.NoError(t, err)
	assert.Equal(t, 4, profile.CurrentStreak)
	assert.Equal(t, 4, profile.LongestStreak)
}

func TestRecordActivityBrokenStreakResets(t *testing.T) {
	profiles, db := newProfileService(t)

	threeDaysAgo := time.Now().AddDate(0, 0, -3)
	require.NoError(t, db.Create(&model.Checkin{
		UserID:     "user-1",
		CheckinAt:  threeDaysAgo,
		StreakDays: 7,
	}).Error)
	require.NoError(t, db.Create(&model.Profile{
		ID:            "user-1",
		CurrentStreak: 7,
		LongestStreak: 7,
		Level:         1,
	}).Error)

	require.NoError(t, profiles.RecordActivity("user-1"))

	profile, err := profiles.GetOrCreate("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.CurrentStreak)
	assert.Equal(t, 7, profile.LongestStreak, "longest streak is never lowered")
}

func TestLeaderboardOrderAndLimit(t *testing.T) {
	profiles, db := newProfileService(t)

	for i, xp := range []int{300, 1200, 50, 900} {
		require.NoError(t, db.Create(&model.Profile{
			ID:      string(rune('a' + i)),
			TotalXP: xp,
			Level:   model.LevelForXP(xp),
		}).Error)
	}

	top, err := profiles.Leaderboard(2)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, 1200, top[0].TotalXP)
	assert.Equal(t, 900, top[1].TotalXP)

	// Nonsense limits fall back to the default of 10.
	all, err := profiles.Leaderboard(-1)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
