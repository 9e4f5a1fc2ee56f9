package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vibestudy/internal/cache"
	"vibestudy/internal/config"
	"vibestudy/internal/controller"
	"vibestudy/internal/repository"
	"vibestudy/internal/service"
	"vibestudy/pkg/database"
	"vibestudy/pkg/logger"
	"vibestudy/pkg/monitoring"
	"vibestudy/pkg/security"
	"vibestudy/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	profile  *repository.ProfileRepository
	course   *repository.CourseRepository
	progress *repository.ProgressRepository
	task     *repository.TaskRepository
	checkin  *repository.CheckinRepository
}

type services struct {
	auth      *service.AuthService
	profile   *service.ProfileService
	progress  *service.ProgressService
	ai        *service.AIService
	lesson    *service.LessonService
	dashboard *service.DashboardService
	storage   *service.StorageService
}

type controllers struct {
	auth      *controller.AuthController
	profile   *controller.ProfileController
	progress  *controller.ProgressController
	lesson    *controller.LessonController
	dashboard *controller.DashboardController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig is invoked by the config watcher when the file changes on disk.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		profile:  repository.NewProfileRepository(db),
		course:   repository.NewCourseRepository(db),
		progress: repository.NewProgressRepository(db),
		task:     repository.NewTaskRepository(db),
		checkin:  repository.NewCheckinRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.profile = service.NewProfileService(repos.profile, repos.user, repos.checkin)
	s.progress = service.NewProgressService(repos.progress, repos.task, repos.course, s.profile, cfg.Lessons.TaskXP)
	s.ai = service.NewAIService(cfg.AI)

	maxAge := time.Duration(cfg.Lessons.CacheTTLHours) * time.Hour
	var redisCache *cache.RedisLessonCache
	if rdb != nil {
		redisCache = cache.NewRedisLessonCache(rdb, maxAge)
	}
	s.lesson = service.NewLessonService(cache.NewLessonStore(), redisCache, s.ai, repos.course, maxAge)

	s.dashboard = service.NewDashboardService(repos.progress, repos.task, repos.course, s.profile)

	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		profile:   controller.NewProfileController(s.profile, s.storage),
		progress:  controller.NewProgressController(s.progress),
		lesson:    controller.NewLessonController(s.lesson, s.ai, repos.course),
		dashboard: controller.NewDashboardController(s.dashboard, s.profile),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	go func() {
		interval := time.Duration(a.Config.Lessons.PruneIntervalMins) * time.Minute
		ticker := time.NewTicker(interval)
		for range ticker.C {
			if removed := s.lesson.PruneOnce(); removed > 0 {
				logger.Log.Info("Pruned expired lessons from cache", zap.Int("removed", removed))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Migration failed", zap.Error(err))
		}
		logger.Log.Info("Migration complete")
		os.Exit(0)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The lesson cache degrades to memory-only without redis.
		logger.Log.Warn("Redis unavailable, continuing without shared lesson cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, repos, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("vibestudy", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services, cfg)

	if cfg.Storage.Type != "minio" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
