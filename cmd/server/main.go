package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"parking-be-svc/docs"
	"parking-be-svc/internal/config"
	"parking-be-svc/internal/database"
	"parking-be-svc/internal/handler"
	"parking-be-svc/internal/middleware"
	"parking-be-svc/internal/pdf"
	"parking-be-svc/internal/repository"
	"parking-be-svc/internal/scheduler"
	"parking-be-svc/internal/service"
	"parking-be-svc/pkg/logger"
)

// @title Parking Billing Service API
// @version 1.0
// @description RESTful API for the monthly parking billing service

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "Parking Billing Service API"
	docs.SwaggerInfo.Description = "RESTful API for the monthly parking billing service"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting Parking Billing Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize repositories. Users and settings always live in flat JSON
	// documents; records can optionally live in the embedded database.
	userRepo, err := repository.NewFileUserRepository(cfg.Storage.DataDir)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to initialize user store")
	}
	settingsRepo, err := repository.NewFileSettingsRepository(cfg.Storage.DataDir)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to initialize settings store")
	}

	var recordRepo repository.RecordRepository
	var db *database.Database
	if cfg.Storage.Driver == "sqlite" {
		db, err = database.NewDatabase(cfg.Storage.SQLitePath)
		if err != nil {
			appLogger.WithField("error", err).Fatal("Failed to open database")
		}
		if err := db.AutoMigrate(); err != nil {
			appLogger.WithField("error", err).Fatal("Failed to run database migrations")
		}
		recordRepo = repository.NewDBRecordRepository(db.DB)
		appLogger.WithField("path", cfg.Storage.SQLitePath).Info("Record store backed by sqlite")
	} else {
		recordRepo, err = repository.NewFileRecordRepository(cfg.Storage.DataDir)
		if err != nil {
			appLogger.WithField("error", err).Fatal("Failed to initialize record store")
		}
		appLogger.WithField("data_dir", cfg.Storage.DataDir).Info("Record store backed by JSON file")
	}

	// Initialize services
	reportService := service.NewReportService()
	billingService := service.NewBillingService(recordRepo, settingsRepo, reportService, pdf.NewBillBuilder(), appLogger)
	userService := service.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpiryHours, appLogger)
	settingsService := service.NewSettingsService(settingsRepo, appLogger)
	exportService := service.NewExportService(recordRepo, userRepo, settingsRepo, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler(appLogger))
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())

	// Setup routes
	handler.SetupRoutes(router, cfg.JWT.Secret, billingService, userService, settingsService, exportService, appLogger)

	// Start the backup scheduler
	backupScheduler := scheduler.NewBackupScheduler(exportService, appLogger, cfg.Scheduler.BackupCronExpression, cfg.Storage.DataDir)
	if err := backupScheduler.Start(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to start backup scheduler")
	}

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	appLogger.WithField("port", cfg.Server.Port).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop scheduled jobs before closing the stores they write to
	backupScheduler.Stop()

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Fatal("Server forced to shutdown")
	}

	// Close database connection
	if db != nil {
		if err := db.Close(); err != nil {
			appLogger.WithField("error", err).Error("Failed to close database connection")
		}
	}

	appLogger.Info("Server exited successfully")
}
