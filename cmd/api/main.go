package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/24studio/finance-backend/internal/config"
	"github.com/24studio/finance-backend/internal/handler"
	"github.com/24studio/finance-backend/internal/middleware"
	"github.com/24studio/finance-backend/internal/repository/postgres"
	"github.com/24studio/finance-backend/internal/repository/storage"
	"github.com/24studio/finance-backend/internal/service"
	"github.com/24studio/finance-backend/internal/ws"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	donorRepo := postgres.NewDonorRepository(pool)
	donationRepo := postgres.NewDonationRepository(pool)
	revenueRepo := postgres.NewRevenueRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	// Receipt storage is optional: without credentials the endpoints
	// answer 503 instead of failing startup.
	var receiptService *service.ReceiptService
	if cfg.S3.AccessKeyID != "" && cfg.S3.SecretAccessKey != "" {
		receiptRepo, err := storage.NewS3ReceiptRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize receipt storage")
		}
		receiptService = service.NewReceiptService(receiptRepo)
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Receipt storage enabled")
	} else {
		receiptService = service.NewReceiptService(nil)
		log.Warn().Msg("Receipt storage disabled: no S3 credentials")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	accountService := service.NewAccountService(accountRepo)
	donorService := service.NewDonorService(donorRepo, donationRepo)
	donationService := service.NewDonationService(donationRepo)
	revenueService := service.NewRevenueService(revenueRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	budgetService := service.NewBudgetService(budgetRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	reportService := service.NewReportService(reportRepo, accountRepo)
	exportService := service.NewExportService(reportService)

	// Sessions, rate limiting, websocket hub
	sessionManager := middleware.NewSessionManager(
		cfg.SessionSecret,
		time.Duration(cfg.SessionMaxAge)*time.Second,
		cfg.IsProduction(),
	)
	loginLimiter := middleware.NewRateLimiter()
	defer loginLimiter.Stop()
	hub := ws.NewHub()

	// Initialize handlers
	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService, sessionManager),
		User:      handler.NewUserHandler(userService, hub),
		Account:   handler.NewAccountHandler(accountService, hub),
		Donor:     handler.NewDonorHandler(donorService, hub),
		Donation:  handler.NewDonationHandler(donationService, hub),
		Revenue:   handler.NewRevenueHandler(revenueService, hub),
		Expense:   handler.NewExpenseHandler(expenseService, hub),
		Budget:    handler.NewBudgetHandler(budgetService, hub),
		Settings:  handler.NewSettingsHandler(settingsService, hub),
		Report:    handler.NewReportHandler(reportService, exportService),
		Receipt:   handler.NewReceiptHandler(receiptService),
		WebSocket: handler.NewWebSocketHandler(hub, sessionManager, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	e.Use(zerologMiddleware())
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	handler.RegisterRoutes(e, handlers, sessionManager, loginLimiter)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
