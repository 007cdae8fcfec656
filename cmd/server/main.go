package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rebounder/signage_backend/internal/config"
	"github.com/rebounder/signage_backend/internal/database"
	"github.com/rebounder/signage_backend/internal/logging"
	"github.com/rebounder/signage_backend/internal/observability"
	"github.com/rebounder/signage_backend/internal/routes"
	"github.com/rebounder/signage_backend/internal/ws"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	logg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logg.Closer()

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "")
	if err != nil {
		logg.Sugar.Warnw("sentry init failed", "error", err)
	}
	defer flushSentry()

	db, err := database.Connect(cfg)
	if err != nil {
		logg.Sugar.Fatalw("database connection failed", "error", err)
	}

	if err := database.Migrate(db); err != nil {
		logg.Sugar.Fatalw("database migration failed", "error", err)
	}

	if err := database.SeedSuperAdmin(db, cfg); err != nil {
		logg.Sugar.Fatalw("super admin seed failed", "error", err)
	}

	if err := database.SeedDemoSchool(db); err != nil {
		logg.Sugar.Fatalw("demo school seed failed", "error", err)
	}

	registry := ws.NewRegistry(logg.Base)

	r := gin.Default()
	routes.Register(r, db, cfg, registry, logg.Base)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		observability.CaptureErr(err)
		logg.Sugar.Errorw("server exited with error", "error", err)
		os.Exit(1)
	}
}
