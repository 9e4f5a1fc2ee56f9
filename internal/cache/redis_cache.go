package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vibestudy/internal/model"

	"github.com/go-redis/redis/v8"
)

// RedisLessonCache shares generated lessons across instances and restarts.
// The in-process LessonStore sits in front of it.
type RedisLessonCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLessonCache(client *redis.Client, ttl time.Duration) *RedisLessonCache {
	return &RedisLessonCache{client: client, ttl: ttl}
}

func redisKey(courseID string, day int) string {
	return fmt.Sprintf("lesson:%s:%d", courseID, day)
}

// Get returns (nil, nil) on a miss; only transport failures are errors.
func (c *RedisLessonCache) Get(ctx context.Context, courseID string, day int) (*model.GeneratedLesson, error) {
	val, err := c.client.Get(ctx, redisKey(courseID, day)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson %s: %w", redisKey(courseID, day), err)
	}

	var lesson model.GeneratedLesson
	if err := json.Unmarshal([]byte(val), &lesson); err != nil {
		return nil, fmt.Errorf("decode lesson %s: %w", redisKey(courseID, day), err)
	}
	return &lesson, nil
}

func (c *RedisLessonCache) Set(ctx context.Context, lesson *model.GeneratedLesson) error {
	data, err := json.Marshal(lesson)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKey(lesson.CourseID, lesson.Day), data, c.ttl).Err()
}

func (c *RedisLessonCache) Delete(ctx context.Context, courseID string, day int) error {
	return c.client.Del(ctx, redisKey(courseID, day)).Err()
}
