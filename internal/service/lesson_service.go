package service

import (
	"context"
	"errors"
	"time"

	"vibestudy/internal/cache"
	"vibestudy/internal/model"
	"vibestudy/internal/repository"
	"vibestudy/internal/util"
	"vibestudy/pkg/logger"
	"vibestudy/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LessonService resolves lesson content through the cache layers: in-process
// store, then redis, then AI generation (with its mock fallback). Generated
// content is written back to both layers, last write wins.
type LessonService struct {
	Store      *cache.LessonStore
	RedisCache *cache.RedisLessonCache
	AI         *AIService
	CourseRepo *repository.CourseRepository
	MaxAge     time.Duration
}

func NewLessonService(store *cache.LessonStore, redisCache *cache.RedisLessonCache, ai *AIService, courseRepo *repository.CourseRepository, maxAge time.Duration) *LessonService {
	return &LessonService{
		Store:      store,
		RedisCache: redisCache,
		AI:         ai,
		CourseRepo: courseRepo,
		MaxAge:     maxAge,
	}
}

func (s *LessonService) GetLesson(ctx context.Context, courseID string, day int, careerPath string) (*model.GeneratedLesson, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if day < 1 || day > course.DurationDays {
		return nil, util.ErrInvalidDay
	}

	if careerPath == "" && len(course.CareerPaths) > 0 {
		careerPath = course.CareerPaths[0]
	}

	if lesson, ok := s.Store.Get(courseID, day); ok {
		monitoring.LessonCacheHits.WithLabelValues("memory").Inc()
		return lesson, nil
	}

	if s.RedisCache != nil {
		lesson, err := s.RedisCache.Get(ctx, courseID, day)
		if err != nil {
			logger.Log.Warn("lesson redis read failed",
				zap.String("course", courseID), zap.Int("day", day), zap.Error(err))
		} else if lesson != nil {
			monitoring.LessonCacheHits.WithLabelValues("redis").Inc()
			s.Store.Put(*lesson)
			return lesson, nil
		}
	}

	monitoring.LessonCacheHits.WithLabelValues("generated").Inc()
	theory, tasks := s.AI.GenerateLesson(ctx, course.Language, day, careerPath)
	lesson := s.Store.Set(courseID, day, theory, tasks)

	if s.RedisCache != nil {
		if err := s.RedisCache.Set(ctx, &lesson); err != nil {
			// Cache write failure must not fail the request.
			logger.Log.Warn("lesson redis write failed",
				zap.String("course", courseID), zap.Int("day", day), zap.Error(err))
		}
	}

	return &lesson, nil
}

func (s *LessonService) ClearLesson(ctx context.Context, courseID string, day int) {
	s.Store.Delete(courseID, day)
	if s.RedisCache != nil {
		if err := s.RedisCache.Delete(ctx, courseID, day); err != nil {
			logger.Log.Warn("lesson redis delete failed",
				zap.String("course", courseID), zap.Int("day", day), zap.Error(err))
		}
	}
}

func (s *LessonService) ClearAll() {
	s.Store.Clear()
}

// PruneOnce sweeps expired entries from the in-process store; redis entries
// expire on their own TTL.
func (s *LessonService) PruneOnce() int {
	return s.Store.Prune(s.MaxAge)
}
