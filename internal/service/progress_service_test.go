package service

import (
	"testing"

	"vibestudy/internal/model"
	"vibestudy/internal/repository"
	"vibestudy/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Course{},
		&model.CourseProgress{},
		&model.CompletedTask{},
		&model.Checkin{},
	))

	require.NoError(t, db.Create(&model.Course{
		ID:           "python",
		Language:     "Python",
		Title:        "Python in 90 Days",
		DurationDays: 90,
	}).Error)

	return db
}

func newProgressService(t *testing.T) (*ProgressService, *ProfileService) {
	t.Helper()

	db := newTestDB(t)
	profiles := NewProfileService(
		repository.NewProfileRepository(db),
		repository.NewUserRepository(db),
		repository.NewCheckinRepository(db),
	)
	progress := NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewTaskRepository(db),
		repository.NewCourseRepository(db),
		profiles,
		10,
	)
	return progress, profiles
}

func TestCompleteLessonFirstDay(t *testing.T) {
	progress, _ := newProgressService(t)

	row, err := progress.CompleteLesson("user-1", "python", 1)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, []int(row.CompletedDays))
	assert.Equal(t, 2, row.CurrentDay)
	assert.False(t, row.LastActivity.IsZero())
}

func TestCompleteLessonIdempotent(t *testing.T) {
	progress, _ := newProgressService(t)

	first, err := progress.CompleteLesson("user-1", "python", 3)
	require.NoError(t, err)

	second, err := progress.CompleteLesson("user-1", "python", 3)
	require.NoError(t, err)

	assert.Equal(t, []int(first.CompletedDays), []int(second.CompletedDays))
	assert.Equal(t, first.CurrentDay, second.CurrentDay)
}

func TestCompleteLessonOutOfOrder(t *testing.T) {
	progress, _ := newProgressService(t)

	_, err := progress.CompleteLesson("user-1", "python", 5)
	require.NoError(t, err)

	// Finishing an earlier day afterwards must not regress current_day.
	row, err := progress.CompleteLesson("user-1", "python", 2)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 5}, []int(row.CompletedDays))
	assert.Equal(t, 6, row.CurrentDay)
}

func TestCompleteLessonValidation(t *testing.T) {
	progress, _ := newProgressService(t)

	_, err := progress.CompleteLesson("user-1", "nosuch", 1)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	_, err = progress.CompleteLesson("user-1", "python", 0)
	assert.ErrorIs(t, err, util.ErrInvalidDay)

	_, err = progress.CompleteLesson("user-1", "python", 91)
	assert.ErrorIs(t, err, util.ErrInvalidDay)
}

func TestCompleteTaskAwardsXPOnce(t *testing.T) {
	progress, profiles := newProgressService(t)

	code := "print('hi')"
	awarded, row, err := progress.CompleteTask("user-1", "python", 1, 2, &code)
	require.NoError(t, err)
	assert.Equal(t, 10, awarded)
	assert.Equal(t, 10, row.XPEarned)

	profile, err := profiles.GetOrCreate("user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, profile.TotalXP)

	// Re-submitting the same task overwrites the row but never re-awards XP.
	newCode := "print('bye')"
	awarded, row, err = progress.CompleteTask("user-1", "python", 1, 2, &newCode)
	require.NoError(t, err)
	assert.Equal(t, 0, awarded)
	require.NotNil(t, row.Code)
	assert.Equal(t, "print('bye')", *row.Code)

	profile, err = profiles.GetOrCreate("user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, profile.TotalXP)
}

func TestCompleteTaskDistinctKeys(t *testing.T) {
	progress, profiles := newProgressService(t)

	for _, key := range []struct{ day, task int }{{1, 1}, {1, 2}, {2, 1}} {
		awarded, _, err := progress.CompleteTask("user-1", "python", key.day, key.task, nil)
		require.NoError(t, err)
		assert.Equal(t, 10, awarded)
	}

	profile, err := profiles.GetOrCreate("user-1")
	require.NoError(t, err)
	assert.Equal(t, 30, profile.TotalXP)
}

func TestIsTaskCompleted(t *testing.T) {
	progress, _ := newProgressService(t)

	done, err := progress.IsTaskCompleted("user-1", "python", 1, 1)
	require.NoError(t, err)
	assert.False(t, done)

	_, _, err = progress.CompleteTask("user-1", "python", 1, 1, nil)
	require.NoError(t, err)

	done, err = progress.IsTaskCompleted("user-1", "python", 1, 1)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestUpdateCurrentDayClamps(t *testing.T) {
	progress, _ := newProgressService(t)

	_, err := progress.CompleteLesson("user-1", "python", 4)
	require.NoError(t, err)

	// Jumping forward is allowed.
	row, err := progress.UpdateCurrentDay("user-1", "python", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, row.CurrentDay)

	// Jumping below the highest completed day clamps to it.
	row, err = progress.UpdateCurrentDay("user-1", "python", 2)
	require.NoError(t, err)
	assert.Equal(t, 4, row.CurrentDay)
	assert.Equal(t, []int{4}, []int(row.CompletedDays))
}

func TestUpdateCurrentDayFreshRow(t *testing.T) {
	progress, _ := newProgressService(t)

	row, err := progress.UpdateCurrentDay("user-1", "python", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, row.CurrentDay)
	assert.Empty(t, []int(row.CompletedDays))
}

func TestFetchProgressSnapshot(t *testing.T) {
	progress, _ := newProgressService(t)

	_, err := progress.CompleteLesson("user-1", "python", 1)
	require.NoError(t, err)
	_, _, err = progress.CompleteTask("user-1", "python", 1, 1, nil)
	require.NoError(t, err)

	snapshot, err := progress.FetchProgress("user-1")
	require.NoError(t, err)

	require.Contains(t, snapshot.CourseProgress, "python")
	assert.Equal(t, []int{1}, []int(snapshot.CourseProgress["python"].CompletedDays))
	assert.Len(t, snapshot.CompletedTasks, 1)
	assert.False(t, snapshot.LastSync.IsZero())
}

func TestGetProgressMissingRow(t *testing.T) {
	progress, _ := newProgressService(t)

	row, err := progress.GetProgress("user-1", "python")
	require.NoError(t, err)
	assert.Nil(t, row)

	days, err := progress.GetCompletedDays("user-1", "python")
	require.NoError(t, err)
	assert.Empty(t, days)
}
