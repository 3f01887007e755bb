package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	accessUseCase "github.com/Alex-KostPy/roofnn/internal/domain/usecase/access"
	ledgerUseCase "github.com/Alex-KostPy/roofnn/internal/domain/usecase/ledger"
	spotUseCase "github.com/Alex-KostPy/roofnn/internal/domain/usecase/spot"

	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/api/handler"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/api/routes"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/auth"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/database"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/database/migration"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/logger"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/notifier"
	timeProvider "github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/time"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	// Setup database configuration
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Unit of work (transaction boundary for use cases)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	// Moderator notifications go out asynchronously so submissions never
	// wait on the Telegram API
	moderatorNotifier := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID, appLogger)
	dispatcher := notifier.NewAsyncDispatcher(moderatorNotifier, appLogger, cfg.Telegram.NotifyQueue)

	// Initialize use cases
	ledgerService := ledgerUseCase.NewService(uow, tp, appLogger)
	accessService := accessUseCase.NewService(uow, tp, appLogger)
	spotRegistry := spotUseCase.NewRegistry(uow, dispatcher, tp, appLogger, cfg.Market.SpotPrice)
	moderation := spotUseCase.NewModeration(uow, tp, appLogger, cfg.Market.ApprovalReward)

	// Telegram WebApp identity verification
	authenticator := auth.NewAuthenticator(cfg.Telegram.BotToken, appLogger)

	// Initialize API handlers
	spotHandler := handler.NewSpotHandler(spotRegistry, authenticator, appLogger)
	accessHandler := handler.NewAccessHandler(accessService, authenticator, appLogger)
	profileHandler := handler.NewProfileHandler(ledgerService, authenticator, appLogger)
	adminHandler := handler.NewAdminHandler(moderation, ledgerService, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, spotHandler, accessHandler, profileHandler, adminHandler, cfg.Telegram.BotToken)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop accepting new requests first, then drain the in-process queues
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	accessService.Shutdown()
	dispatcher.Shutdown()

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or RF_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or RF_DB_USERNAME environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or RF_DB_NAME environment variable)")
	}

	// The bot token doubles as the admin credential, refuse to start without it
	if cfg.Telegram.BotToken == "" {
		missingConfigs = append(missingConfigs, "telegram.botToken (or RF_BOT_TOKEN environment variable)")
	}
	if cfg.Telegram.AdminChatID == 0 {
		missingConfigs = append(missingConfigs, "telegram.adminChatId (or RF_ADMIN_CHAT_ID environment variable)")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	return nil
}
