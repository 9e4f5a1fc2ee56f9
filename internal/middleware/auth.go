package middleware

import (
	"strings"

	"vibestudy/internal/config"
	"vibestudy/internal/util"
	"vibestudy/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// ActivityTracker is what the activity middleware needs from the profile
// layer: last-seen bookkeeping and the daily streak touch.
type ActivityTracker interface {
	UpdateLastSeen(userID string) error
	RecordActivity(userID string) error
}

// ActivityMiddleware updates last-seen and the daily checkin streak off the
// request path; failures are logged and never block the request.
func ActivityMiddleware(tracker ActivityTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims != nil {
			go func(userID string) {
				if err := tracker.UpdateLastSeen(userID); err != nil {
					logger.Log.Debug("last-seen update failed", zap.Error(err))
				}
				if err := tracker.RecordActivity(userID); err != nil {
					logger.Log.Debug("activity checkin failed", zap.Error(err))
				}
			}(claims.UserID)
		}
		c.Next()
	}
}
