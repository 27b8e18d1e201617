// File: /main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"etkinlik-api/config"
	"etkinlik-api/database"
	"etkinlik-api/jobs"
	"etkinlik-api/middleware"
	"etkinlik-api/repositories"
	"etkinlik-api/routes"
	"etkinlik-api/services"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	gin.SetMode(cfg.Mode)
	gormLevel := logger.Warn
	if cfg.Mode == gin.DebugMode {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		gormLevel = logger.Info
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database, gormLevel)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db, log); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}
	if err := database.SeedData(db, log); err != nil {
		log.WithError(err).Warn("failed to seed database")
	}

	emailService := services.NewEmailService(cfg.SMTP, cfg.Auth.CodeTTL, log)
	stop := make(chan struct{})
	go emailService.CleanupExpiredCodes(5*time.Minute, stop)

	expiryJob := jobs.NewAnnouncementExpiryJob(repositories.NewAnnouncementRepository(db), cfg.Jobs.AnnouncementExpiryCron, log)
	if err := expiryJob.Start(); err != nil {
		log.WithError(err).Fatal("failed to start announcement expiry job")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.SecurityHeaders())
	router.Use(routes.SetupCORS(cfg.AllowedOrigins))
	if cfg.Mode == gin.DebugMode {
		pprof.Register(router)
	}

	routes.SetupRoutes(router, db, cfg, emailService, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute, // video uploads
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("starting events API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	expiryJob.Stop()
	close(stop)

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("server stopped")
}
