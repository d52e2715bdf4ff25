package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/smashhub/smashhub-server/cache"
	"github.com/smashhub/smashhub-server/config"
	"github.com/smashhub/smashhub-server/db"
	"github.com/smashhub/smashhub-server/handlers"
	"github.com/smashhub/smashhub-server/middleware"
	"github.com/smashhub/smashhub-server/pegboard"
	"github.com/smashhub/smashhub-server/repositories"
	api "github.com/smashhub/smashhub-server/routes"
	"github.com/smashhub/smashhub-server/services"
	"github.com/smashhub/smashhub-server/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	cacheClient, err := cache.Connect(cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer cacheClient.Close()

	// Profile photo storage is optional: without R2 credentials players simply
	// have no photos.
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	}

	wsHub := pegboard.NewHub()
	go wsHub.Run()
	logger.Info("pegboard hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	clubRepo := repositories.NewPostgresClubRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	historyRepo := repositories.NewPostgresMatchHistoryRepository(dbConn)
	summaryRepo := repositories.NewPostgresMatchSummaryRepository(dbConn)
	attendanceRepo := repositories.NewPostgresAttendanceRepository(dbConn)
	skillRepo := repositories.NewPostgresSkillRepository(dbConn)
	financeRepo := repositories.NewPostgresFinanceRepository(dbConn)
	auditRepo := repositories.NewPostgresAuditLogRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo, clubRepo)
	rosterService := services.NewRosterService(playerRepo, uploader)
	matchService := services.NewMatchService(historyRepo, playerRepo, logger)
	summaryService := services.NewSummaryService(summaryRepo, playerRepo, cacheClient, logger)
	pegboardService := services.NewPegboardService(clubRepo, playerRepo, matchService, summaryService, wsHub, logger)
	attendanceService := services.NewAttendanceService(attendanceRepo)
	skillService := services.NewSkillService(skillRepo, playerRepo)
	csvService := services.NewCSVService(rosterService)
	financeService := services.NewFinanceService(financeRepo, auditRepo, logger)
	emailService := services.NewEmailService(cfg)
	logger.Info("services initialized")

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
		Enabled:           cfg.RateLimitEnabled,
		TrustProxy:        true,
	})

	routeHandlers := api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Player:     handlers.NewPlayerHandler(rosterService),
		Pegboard:   handlers.NewPegboardHandler(pegboardService),
		Match:      handlers.NewMatchHandler(matchService),
		Summary:    handlers.NewSummaryHandler(summaryService, emailService),
		Attendance: handlers.NewAttendanceHandler(attendanceService),
		Skill:      handlers.NewSkillHandler(skillService),
		CSV:        handlers.NewCSVHandler(csvService),
		Finance:    handlers.NewFinanceHandler(financeService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub),
	}

	router := chi.NewRouter()
	api.SetupRoutes(router, routeHandlers, rateLimiter, cfg.JWTSecretKey)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
