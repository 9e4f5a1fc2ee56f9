package controller

import (
	"context"
	"net/http"
	"time"

	"vibestudy/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// Health godoc
// @Summary Service liveness and dependency status
// @Tags health
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	status := gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}

	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := c.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(checkCtx)
	}
	if err != nil {
		status["database"] = "down"
		util.Error(ctx, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	status["database"] = "up"

	if c.Redis != nil {
		if err := c.Redis.Ping(checkCtx).Err(); err != nil {
			status["redis"] = "down"
		} else {
			status["redis"] = "up"
		}
	}

	util.Success(ctx, status)
}
