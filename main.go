package main

import (
	"fmt"

	"quickbite/configs"
	"quickbite/jobs"
	"quickbite/middlewares"
	"quickbite/pkg/logger"
	"quickbite/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()

	logger.Init(cfg.Env)
	log := logger.L()

	// DB
	configs.ConnectionDB(cfg)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatal("seed admin failed", zap.Error(err))
	}

	// background jobs (stale pending_payment sweep)
	if _, err := jobs.Start(db, cfg); err != nil {
		log.Fatal("cron start failed", zap.Error(err))
	}

	// HTTP
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.MetricsMiddleware())

	// ✅ Serve uploaded files (banners, meal images, payment proofs, QR codes)
	r.Static("/uploads", "./"+cfg.UploadDir)

	routes.RegisterRoutes(r, db, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("🚀 server running", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
