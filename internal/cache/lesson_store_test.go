package cache

import (
	"testing"
	"time"

	"vibestudy/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "python-1", Key("python", 1))
	assert.Equal(t, "go-42", Key("go", 42))
}

func TestSetAndGet(t *testing.T) {
	store := NewLessonStore()

	tasks := []model.GeneratedTask{{ID: 1, Title: "Hello World", Difficulty: model.DifficultyEasy}}
	stored := store.Set("python", 1, "Variables and types.", tasks)

	assert.Equal(t, "python", stored.CourseID)
	assert.Equal(t, 1, stored.Day)
	assert.False(t, stored.GeneratedAt.IsZero())

	got, ok := store.Get("python", 1)
	require.True(t, ok)
	assert.Equal(t, "Variables and types.", got.Theory)
	assert.Len(t, got.Tasks, 1)

	_, ok = store.Get("python", 2)
	assert.False(t, ok)
	_, ok = store.Get("go", 1)
	assert.False(t, ok)
}

func TestSetOverwrites(t *testing.T) {
	store := NewLessonStore()

	store.Set("python", 1, "first", nil)
	store.Set("python", 1, "second", nil)

	got, ok := store.Get("python", 1)
	require.True(t, ok)
	assert.Equal(t, "second", got.Theory)
	assert.Equal(t, 1, store.Len())
}

func TestDeleteAndClear(t *testing.T) {
	store := NewLessonStore()
	store.Set("python", 1, "a", nil)
	store.Set("python", 2, "b", nil)
	store.Set("go", 1, "c", nil)

	store.Delete("python", 1)
	assert.False(t, store.Has("python", 1))
	assert.Equal(t, 2, store.Len())

	store.Clear()
	assert.Equal(t, 0, store.Len())
}

func TestPruneBoundary(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	maxAge := 24 * time.Hour

	store := NewLessonStore()
	store.now = func() time.Time { return base }

	store.Put(model.GeneratedLesson{CourseID: "python", Day: 1, GeneratedAt: base.Add(-maxAge - time.Second)})
	store.Put(model.GeneratedLesson{CourseID: "python", Day: 2, GeneratedAt: base.Add(-maxAge)})
	store.Put(model.GeneratedLesson{CourseID: "python", Day: 3, GeneratedAt: base.Add(-maxAge + time.Second)})
	store.Put(model.GeneratedLesson{CourseID: "python", Day: 4, GeneratedAt: base})

	removed := store.Prune(maxAge)

	assert.Equal(t, 2, removed)
	assert.False(t, store.Has("python", 1), "older than maxAge must be removed")
	assert.False(t, store.Has("python", 2), "exactly maxAge old must be removed")
	assert.True(t, store.Has("python", 3), "younger than maxAge must survive")
	assert.True(t, store.Has("python", 4))
}

func TestPruneEmptyStore(t *testing.T) {
	store := NewLessonStore()
	assert.Equal(t, 0, store.Prune(time.Hour))
}
