package main

import (
	"log/slog"
	"net/http"

	"fintrack/internal/config"
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// newServer wires repositories, services, and handlers into a configured
// echo instance with all routes registered.
func newServer(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *echo.Echo {
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	entryRepo := repositories.NewEntryRepository(db)

	metrics := services.NewPrometheusMetrics()
	auditService := services.NewAuditService(auditRepo)
	passwordService := services.NewPasswordService(userRepo, auditService)
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(
		userRepo,
		refreshTokenRepo,
		auditRepo,
		blacklistedTokenRepo,
		passwordService,
		tokenService,
		logger,
	)
	itemService := services.NewItemService(itemRepo, metrics, logger)
	entryService := services.NewEntryService(entryRepo, itemRepo, metrics, logger)
	reportService := services.NewReportService(entryRepo, metrics, logger)

	authHandler := handlers.NewAuthHandler(authService, passwordService, userRepo)
	itemHandler := handlers.NewItemHandler(itemService, auditService)
	incomeHandler := handlers.NewEntryHandler(models.EntryKindIncome, entryService, auditService)
	expenseHandler := handlers.NewEntryHandler(models.EntryKindExpense, entryService, auditService)
	reportHandler := handlers.NewReportHandler(reportService, auditService)
	activityHandler := handlers.NewActivityHandler(auditService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitPerSecond*2))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(tokenService, blacklistedTokenRepo)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	// Logout validates the bearer token itself so that an already expired
	// access token can still be blacklisted
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/profile", authHandler.Profile, requireAuth)
	auth.PUT("/password", authHandler.UpdatePassword, requireAuth)
	auth.GET("/activity", activityHandler.OwnActivity, requireAuth)

	admin := api.Group("/admin", requireAuth, middleware.RequireAdmin())
	admin.GET("/users/:id/activity", activityHandler.UserActivity)

	items := api.Group("/items", requireAuth)
	items.POST("/query", itemHandler.Query)
	items.GET("/options", itemHandler.Options)
	items.POST("", itemHandler.Create)
	items.GET("/:id", itemHandler.Get)
	items.PUT("/:id", itemHandler.Update)
	items.DELETE("/:id", itemHandler.Delete)

	incomes := api.Group("/incomes", requireAuth)
	incomes.POST("/query", incomeHandler.Query)
	incomes.POST("", incomeHandler.Create)
	incomes.PUT("/:id", incomeHandler.Update)
	incomes.DELETE("/:id", incomeHandler.Delete)

	expenses := api.Group("/expenses", requireAuth)
	expenses.POST("/query", expenseHandler.Query)
	expenses.POST("", expenseHandler.Create)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	report := api.Group("/report", requireAuth)
	report.GET("/summary", reportHandler.Summary)
	report.GET("/chart", reportHandler.Chart)

	return e
}
