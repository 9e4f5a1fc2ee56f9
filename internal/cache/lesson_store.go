package cache

import (
	"fmt"
	"sync"
	"time"

	"vibestudy/internal/model"
)

// LessonStore is the in-process cache of generated lessons, one entry per
// (course, day). Absence of a key is a normal outcome and triggers
// generation upstream. Eviction is a plain TTL sweep: no access times are
// tracked and entries keep their original GeneratedAt.
type LessonStore struct {
	mu      sync.RWMutex
	lessons map[string]model.GeneratedLesson

	now func() time.Time
}

func NewLessonStore() *LessonStore {
	return &LessonStore{
		lessons: make(map[string]model.GeneratedLesson),
		now:     time.Now,
	}
}

func Key(courseID string, day int) string {
	return fmt.Sprintf("%s-%d", courseID, day)
}

func (s *LessonStore) Get(courseID string, day int) (*model.GeneratedLesson, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lesson, ok := s.lessons[Key(courseID, day)]
	if !ok {
		return nil, false
	}
	return &lesson, true
}

func (s *LessonStore) Has(courseID string, day int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.lessons[Key(courseID, day)]
	return ok
}

// Set stamps the entry with the current time and overwrites unconditionally
// (last write wins, no merge).
func (s *LessonStore) Set(courseID string, day int, theory string, tasks []model.GeneratedTask) model.GeneratedLesson {
	lesson := model.GeneratedLesson{
		CourseID:    courseID,
		Day:         day,
		Theory:      theory,
		Tasks:       tasks,
		GeneratedAt: s.now(),
	}

	s.mu.Lock()
	s.lessons[Key(courseID, day)] = lesson
	s.mu.Unlock()

	return lesson
}

// Put stores an already-stamped lesson, used when rehydrating from redis.
func (s *LessonStore) Put(lesson model.GeneratedLesson) {
	s.mu.Lock()
	s.lessons[Key(lesson.CourseID, lesson.Day)] = lesson
	s.mu.Unlock()
}

func (s *LessonStore) Delete(courseID string, day int) {
	s.mu.Lock()
	delete(s.lessons, Key(courseID, day))
	s.mu.Unlock()
}

func (s *LessonStore) Clear() {
	s.mu.Lock()
	s.lessons = make(map[string]model.GeneratedLesson)
	s.mu.Unlock()
}

func (s *LessonStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lessons)
}

// Prune removes every entry whose age reached maxAge; an entry is retained
// iff age < maxAge. Returns how many entries were removed.
func (s *LessonStore) Prune(maxAge time.Duration) int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, lesson := range s.lessons {
		if now.Sub(lesson.GeneratedAt) >= maxAge {
			delete(s.lessons, key)
			removed++
		}
	}
	return removed
}
