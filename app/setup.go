package app

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sabyskool/api/api"
	"github.com/sabyskool/api/config"
	"github.com/sabyskool/api/database"
	"github.com/sabyskool/api/router"
	"github.com/sabyskool/api/services/cron"
	"github.com/sabyskool/api/utils/middleware"
)

// SetupAndRunServer loads configuration, connects storage, starts the cron
// scheduler and serves the API until the process exits
func SetupAndRunServer() error {
	if err := config.LoadENV(); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}

	env, err := config.Get()
	if err != nil {
		return err
	}

	store, err := database.StartGORM()
	if err != nil {
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Cron jobs are on by default; CRON_ENABLED=false opts out
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" {
		cronManager = cron.NewCronManager(store.GetDB())
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: failed to start cron jobs: %v", err)
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	server := api.NewAPIServer(fmt.Sprintf(":%d", env.PORT))
	app := server.GetEngine()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	router.SetupRoutes(app, store, env)

	return server.Run()
}
