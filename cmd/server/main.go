package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "honeycomb-backend/internal/api/http"
	"honeycomb-backend/internal/config"
	"honeycomb-backend/internal/logger"
	"honeycomb-backend/internal/markdown"
	"honeycomb-backend/internal/repository/postgres"
	"honeycomb-backend/internal/security"
	"honeycomb-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Honeycomb Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	authMW := httpapi.NewAuthMiddleware(tokenManager)

	// Initialize Markdown Renderer
	renderer := markdown.NewRenderer()

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	// Initialize Services. The activity service comes first because the
	// workflow services record into it.
	activitySvc := service.NewActivityService(
		store.ActivityRepository,
		cfg.Cache.MaxEntries,
		time.Duration(cfg.Cache.StreamTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.StatsTTLSeconds)*time.Second,
	)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, activitySvc)
	flagSvc := service.NewFlagService(
		store.FlagRepository,
		store.EntityRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
		activitySvc,
		renderer,
	)
	appSvc := service.NewApplicationService(
		store.ApplicationRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
		activitySvc,
		renderer,
	)
	banSvc := service.NewBanService(
		store.BanRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
		activitySvc,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP handlers and routes
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		Flag:         httpapi.NewFlagHandler(flagSvc),
		Application:  httpapi.NewApplicationHandler(appSvc),
		Ban:          httpapi.NewBanHandler(banSvc),
		Activity:     httpapi.NewActivityHandler(activitySvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
		AuthMW:       authMW,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
