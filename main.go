// @title VibeStudy API
// @version 1.0
// @description Backend for the VibeStudy gamified programming education app.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"vibestudy/internal/app"
	"vibestudy/internal/config"
	"vibestudy/pkg/configwatcher"
	"vibestudy/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force database migrations on startup, even in release mode")
	flag.Parse()

	// Missing .env is fine, config falls back to the yaml file and real env vars.
	godotenv.Load()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig("configs/config.yaml", application.ReloadConfig)

	application.Run()
}
