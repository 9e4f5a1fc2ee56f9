package app

import (
	"vibestudy/docs"
	"vibestudy/internal/config"
	"vibestudy/internal/middleware"
	"vibestudy/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Authorized routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(s.profile))
	{
		authGroup.POST("/signout", c.auth.SignOut)

		authGroup.GET("/profile", c.profile.GetProfile)
		authGroup.PUT("/profile", c.profile.UpdateProfile)
		authGroup.POST("/profile/xp", c.profile.AddXP)
		authGroup.POST("/profile/avatar", c.profile.UploadAvatar)

		authGroup.GET("/courses", c.lesson.ListCourses)
		authGroup.GET("/courses/:courseId", c.lesson.GetCourse)
		authGroup.GET("/courses/:courseId/lessons/:day", c.lesson.GetLesson)
		authGroup.DELETE("/courses/:courseId/lessons/:day", c.lesson.ClearLesson)

		authGroup.GET("/progress", c.progress.FetchProgress)
		authGroup.GET("/progress/:courseId", c.progress.GetCourseProgress)
		authGroup.POST("/progress/:courseId/lessons/:day/complete", c.progress.CompleteLesson)
		authGroup.POST("/progress/:courseId/lessons/:day/tasks/:taskId/complete", c.progress.CompleteTask)
		authGroup.PUT("/progress/:courseId/current-day", c.progress.UpdateCurrentDay)

		authGroup.GET("/challenges/daily", c.lesson.GetDailyChallenge)

		authGroup.GET("/dashboard", c.dashboard.GetDashboard)
		authGroup.GET("/dashboard/weekly", c.dashboard.GetWeeklyActivity)
		authGroup.GET("/leaderboard", c.dashboard.Leaderboard)
	}
}
