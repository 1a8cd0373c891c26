package router

import (
	"net/http"

	"github.com/kumarimahto/Smart-Tracer/internal/ai"
	"github.com/kumarimahto/Smart-Tracer/internal/analytics"
	"github.com/kumarimahto/Smart-Tracer/internal/config"
	"github.com/kumarimahto/Smart-Tracer/internal/handler"
	"github.com/kumarimahto/Smart-Tracer/internal/middleware"
	"github.com/kumarimahto/Smart-Tracer/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the Gin engine, middleware and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, gen ai.TextGenerator) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), gin.Logger(), gin.Recovery())

	// liveness probe, no auth
	r.GET("/health", healthCheck)

	expenseStore := store.New(db)
	engine := analytics.NewEngine(expenseStore, cfg.App.RecentLimit)
	insightService := ai.NewService(gen, cfg.Insights, cfg.AI.BulkDelay())

	api := r.Group("/api")
	api.GET("/health", healthCheck)

	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))

	protected.GET("/auth/verify", handler.Verify)

	expenseHandler := handler.NewExpenseHandler(expenseStore, cfg.App.PageSize, cfg.App.MaxPageSize)
	protected.GET("/expenses", expenseHandler.List)
	protected.POST("/expenses", expenseHandler.Create)
	protected.GET("/expenses/:id", expenseHandler.Get)
	protected.PUT("/expenses/:id", expenseHandler.Update)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)

	analyticsHandler := handler.NewAnalyticsHandler(engine)
	protected.GET("/expenses/summary/monthly/:year/:month", analyticsHandler.MonthlySummary)
	protected.GET("/expenses/trends/spending", analyticsHandler.SpendingTrends)
	protected.GET("/expenses/analytics/dashboard", analyticsHandler.Dashboard)

	exportHandler := handler.NewExportHandler(expenseStore)
	protected.GET("/expenses/export/csv", exportHandler.ExportCSV)
	protected.GET("/expenses/export/xlsx", exportHandler.ExportXLSX)

	insightHandler := handler.NewInsightHandler(engine, insightService)
	protected.POST("/ai/categorize", insightHandler.Categorize)
	protected.GET("/ai/summary/:year/:month", insightHandler.MonthlySummary)
	protected.GET("/ai/budgeting-tips", insightHandler.BudgetingTips)
	protected.POST("/ai/bulk-categorize", insightHandler.BulkCategorize)
	protected.GET("/ai/spending-insights", insightHandler.SpendingInsights)

	protected.GET("/preferences/budget", handler.GetBudgetPreferences(db))
	protected.PUT("/preferences/budget", handler.UpdateBudgetPreferences(db))

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Smart Expense Tracker API is running",
	})
}
