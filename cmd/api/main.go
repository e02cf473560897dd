package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contact-page-backend/config"
	_ "contact-page-backend/docs" // Important for Swagger
	v1 "contact-page-backend/internal/delivery/http/v1"
	"contact-page-backend/internal/domain"
	"contact-page-backend/internal/repository/memory"
	"contact-page-backend/internal/repository/postgres"
	redisrepo "contact-page-backend/internal/repository/redis"
	"contact-page-backend/internal/usecase"
	"contact-page-backend/pkg/analytics"
	"contact-page-backend/pkg/auth"
	"contact-page-backend/pkg/database"
	"contact-page-backend/pkg/email"
	"contact-page-backend/pkg/logger"
	"contact-page-backend/pkg/redis"
	"contact-page-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// @title           Contact Page Backend API
// @version         1.0
// @description     Contact form sessions and mail dispatch for the marketing site.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting contact page backend", "port", cfg.Port, "env", cfg.Environment)
	securityLogger := security.InitSecurityLogger("contact-page-backend", cfg.Environment)
	defer securityLogger.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	checks := map[string]usecase.HealthCheck{}

	// 3. Setup Session Store (Redis when reachable, process memory otherwise)
	var (
		sessionRepo domain.SessionRepository
		sweeper     *cron.Cron
	)
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, falling back to in-memory sessions", "error", err)
		}
	}
	if redis.IsAvailable() {
		sessionRepo = redisrepo.NewSessionRepository(redis.Client(), cfg.SessionTTL)
		checks["redis"] = redis.HealthCheck
		defer redis.Close()
	} else {
		memRepo := memory.NewSessionRepository(cfg.SessionTTL)
		sweeper, err = memory.StartSweeper(memRepo, cfg.SessionSweepSchedule)
		if err != nil {
			logger.Log.Error("Failed to start session sweeper", "error", err)
			os.Exit(1)
		}
		sessionRepo = memRepo
	}

	// 4. Setup Submission Attempt Log (optional)
	var attempts domain.SubmissionAttemptRepository
	var exportUC domain.AttemptExportUsecase
	if cfg.DBUrl != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			cancel()
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		attemptRepo := postgres.NewSubmissionAttemptRepository(dbPool)
		if err := attemptRepo.EnsureSchema(ctx); err != nil {
			cancel()
			logger.Log.Error("Failed to prepare submission attempt table", "error", err)
			os.Exit(1)
		}
		cancel()
		attempts = attemptRepo
		exportUC = usecase.NewAttemptExportUsecase(attemptRepo)
		checks["database"] = dbPool.Ping
	}

	// 5. Setup Mail Dispatcher
	dispatcher := email.NewDispatcher(cfg.MailDispatchURL, cfg.MailDispatchTimeout)
	if !dispatcher.IsConfigured() {
		logger.Log.Warn("Mail dispatch endpoint not configured - every send will fail")
	}

	// 6. Setup Analytics
	var recorder domain.AnalyticsRecorder = analytics.Noop{}
	if cfg.AnalyticsEnabled {
		recorder = analytics.LogRecorder{}
		if redis.IsAvailable() {
			recorder = analytics.Multi{analytics.LogRecorder{}, analytics.NewRedisRecorder(redis.Client())}
		}
	}

	// 7. Setup UseCases
	contactUC := usecase.NewContactUsecase(usecase.ContactDeps{
		Sessions:        sessionRepo,
		Dispatcher:      dispatcher,
		Analytics:       recorder,
		Attempts:        attempts,
		DispatchTimeout: cfg.MailDispatchTimeout,
	})
	healthUC := usecase.NewHealthUsecase(checks)

	// 8. Setup Router
	router, err := v1.NewRouter(v1.RouterDeps{
		ContactUC:       contactUC,
		HealthUC:        healthUC,
		SessionTokens:   auth.NewSessionTokens(cfg.SessionSecret, cfg.SessionTTL),
		Config:          cfg,
		AttemptExportUC: exportUC,
	})
	if err != nil {
		logger.Log.Error("Failed to build router", "error", err)
		os.Exit(1)
	}

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// In-flight sends run on detached contexts; give them time to resolve
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	if sweeper != nil {
		<-sweeper.Stop().Done()
	}

	logger.Log.Info("Server exiting")
}
