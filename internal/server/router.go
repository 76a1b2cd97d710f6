// Package server assembles the services, handlers and routes of the API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/Asshabanu/finance-tracker/internal/config"
	_ "github.com/Asshabanu/finance-tracker/internal/docs" // Import swagger docs
	"github.com/Asshabanu/finance-tracker/internal/handlers"
	"github.com/Asshabanu/finance-tracker/internal/ledger"
	"github.com/Asshabanu/finance-tracker/internal/middleware"
	"github.com/Asshabanu/finance-tracker/internal/reports"
	"github.com/Asshabanu/finance-tracker/internal/services"
)

// NewRouter wires every service and handler against db and returns the gin engine.
// Extra report options are applied after the configured location and concurrency.
func NewRouter(db *gorm.DB, cfg *config.Config, reportOpts ...reports.Option) *gin.Engine {
	engineOpts := append([]reports.Option{
		reports.WithLocation(cfg.ReportLocation),
		reports.WithMaxConcurrency(cfg.ReportMaxConcurrency),
	}, reportOpts...)
	engine := reports.NewEngine(ledger.New(db), engineOpts...)

	// Initialize services
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, categoryService)
	budgetService := services.NewBudgetService(db, categoryService, engine)
	reportService := services.NewReportService(engine)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	reportHandler := handlers.NewReportHandler(reportService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetUserCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/:id/status", budgetHandler.GetBudgetStatus)

	reportRoutes := protected.Group("/reports")
	reportRoutes.GET("/summary", reportHandler.GetSummary)
	reportRoutes.GET("/categories", reportHandler.GetCategoryBreakdown)
	reportRoutes.GET("/monthly-comparison", reportHandler.GetMonthlyComparison)
	reportRoutes.GET("/spending-trends", reportHandler.GetSpendingTrend)

	return router
}
