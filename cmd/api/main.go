package main

import (
	"fmt"
	"os"

	"github.com/Asshabanu/finance-tracker/internal/config"
	"github.com/Asshabanu/finance-tracker/internal/database"
	"github.com/Asshabanu/finance-tracker/internal/logger"
	"github.com/Asshabanu/finance-tracker/internal/server"
	"github.com/Asshabanu/finance-tracker/internal/validator"
)

// @title           Finance Tracker API
// @version         1.0
// @description     Finance Tracker records income and expenses, caps spending with budgets, and reports monthly summaries, category breakdowns and trends.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	router := server.NewRouter(dbManager.DB(), appConfig)

	log.Infow("Starting finance tracker server",
		"port", appConfig.Port,
		"env", appConfig.Env,
		"db_driver", appConfig.DBDriver,
		"report_timezone", appConfig.ReportLocation.String(),
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
