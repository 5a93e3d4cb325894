package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"billed/internal/api"
	"billed/internal/api/handlers"
	"billed/internal/repository"
	"billed/internal/service"
	"billed/internal/store"
	"billed/pkg/auth"
	"billed/pkg/config"
	"billed/pkg/logger"
	"billed/pkg/postgres"

	"go.uber.org/zap"
)

// @title Billed API
// @version 1.0
// @description Saisie et suivi des notes de frais des employés
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@billed.tld

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Billed service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, logger.Component("users"))
	billRepo := repository.NewBillRepository(db, logger.Component("bills"))
	fileStorage, err := repository.NewFileStorage(
		cfg.Storage.UploadDir,
		cfg.Storage.PublicPath,
		cfg.Storage.MaxBytes,
		logger.Component("uploads"),
	)
	if err != nil {
		appLogger.Fatal("Failed to initialize file storage", zap.Error(err))
	}

	billStore := store.NewPostgres(billRepo, fileStorage, logger.Component("store"))

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, logger.Component("auth"))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	billHandler := handlers.NewBillHandler(handlers.OwnerScope(billStore), logger.Component("bills"))

	// Setup router
	app := api.SetupRouter(authHandler, billHandler, jwtManager, cfg, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
