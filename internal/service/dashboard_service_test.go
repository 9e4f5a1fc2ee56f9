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

func newDashboardService(t *testing.T) (*DashboardService, *ProgressService, *gorm.DB) {
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
	dashboard := NewDashboardService(progress.ProgressRepo, progress.TaskRepo, progress.CourseRepo, profiles)
	return dashboard, progress, db
}

func TestGetDashboard(t *testing.T) {
	dashboard, progress, _ := newDashboardService(t)

	_, err := progress.CompleteLesson("user-1", "python", 1)
	require.NoError(t, err)
	_, err = progress.CompleteLesson("user-1", "python", 2)
	require.NoError(t, err)
	_, _, err = progress.CompleteTask("user-1", "python", 1, 1, nil)
	require.NoError(t, err)

	view, err := dashboard.GetDashboard("user-1")
	require.NoError(t, err)

	require.NotNil(t, view.Profile)
	assert.Equal(t, 10, view.Profile.TotalXP)
	assert.EqualValues(t, 1, view.TasksCompleted)
	require.NotNil(t, view.LastActivity)

	require.Len(t, view.Courses, 1)
	course := view.Courses[0]
	assert.Equal(t, "python", course.CourseID)
	assert.Equal(t, 3, course.CurrentDay)
	assert.Equal(t, 2, course.CompletedDays)
	assert.InDelta(t, 2.0/90.0*100, course.Percent, 0.001)
}

func TestGetDashboardNoProgress(t *testing.T) {
	dashboard, _, _ := newDashboardService(t)

	view, err := dashboard.GetDashboard("user-1")
	require.NoError(t, err)

	assert.EqualValues(t, 0, view.TasksCompleted)
	assert.Nil(t, view.LastActivity)
	require.Len(t, view.Courses, 1)
	assert.Equal(t, 1, view.Courses[0].CurrentDay)
	assert.Zero(t, view.Courses[0].Percent)
}

func TestGetWeeklyActivity(t *testing.T) {
	dashboard, progress, _ := newDashboardService(t)

	_, _, err := progress.CompleteTask("user-1", "python", 1, 1, nil)
	require.NoError(t, err)
	_, _, err = progress.CompleteTask("user-1", "python", 1, 2, nil)
	require.NoError(t, err)

	days, err := dashboard.GetWeeklyActivity("user-1")
	require.NoError(t, err)
	require.Len(t, days, 7)

	today := time.Now().Format("2006-01-02")
	assert.Equal(t, today, days[6].Date)
	assert.Equal(t, 2, days[6].Tasks)

	total := 0
	for _, d := range days {
		total += d.Tasks
	}
	assert.Equal(t, 2, total)

	// Another user's week is empty.
	other, err := dashboard.GetWeeklyActivity("user-2")
	require.NoError(t, err)
	for _, d := range other {
		assert.Zero(t, d.Tasks)
	}
}

func TestGetWeeklyActivityExcludesOldTasks(t *testing.T) {
	dashboard, _, db := newDashboardService(t)

	require.NoError(t, db.Create(&model.CompletedTask{
		UserID:      "user-1",
		CourseID:    "python",
		Day:         1,
		TaskID:      9,
		XPEarned:    10,
		CompletedAt: time.Now().AddDate(0, 0, -10),
	}).Error)

	days, err := dashboard.GetWeeklyActivity("user-1")
	require.NoError(t, err)
	for _, d := range days {
		assert.Zero(t, d.Tasks)
	}
}
