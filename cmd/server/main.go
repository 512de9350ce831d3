package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/savexhq/savex/internal/adapter/http"
	"github.com/savexhq/savex/internal/adapter/http/handler"
	"github.com/savexhq/savex/internal/adapter/http/middleware"
	postgresRepo "github.com/savexhq/savex/internal/adapter/repository/postgres"
	redisRepo "github.com/savexhq/savex/internal/adapter/repository/redis"
	"github.com/savexhq/savex/internal/infrastructure/auth"
	"github.com/savexhq/savex/internal/infrastructure/config"
	"github.com/savexhq/savex/internal/infrastructure/email"
	"github.com/savexhq/savex/internal/infrastructure/metrics"
	"github.com/savexhq/savex/internal/infrastructure/postgres"
	"github.com/savexhq/savex/internal/infrastructure/redis"
	"github.com/savexhq/savex/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogFormat != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories and infrastructure
	txManager := postgresRepo.NewTxManager(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()
	otpStore := redisRepo.NewOTPStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	mailer := email.NewSMTPMailer(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		Timeout:  cfg.SMTPTimeout,
	})
	tokens := auth.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL)
	m := metrics.New()

	otpRateLimiter := middleware.NewRateLimiter(cfg.OTPRateLimit, cfg.OTPRateBurst, m)

	// Sweep the per-IP limiter map so idle entries do not accumulate
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			otpRateLimiter.CleanupLimiters()
		}
	}()

	var sessionAuth func(http.Handler) http.Handler
	if cfg.AuthEnabled {
		sessionAuth = middleware.SessionAuth(tokens)
	}

	// Initialize use cases
	otpUC := usecase.NewOTPUseCase(userRepo, otpStore, mailer, tokens, cfg.OTPTTL)
	userUC := usecase.NewUserUseCase(userRepo, txnRepo, cache, cfg.UserCacheTTL)
	ledgerUC := usecase.NewLedgerUseCase(txManager, userRepo, txnRepo, idGen, retrier, cache)

	// Initialize handlers
	otpHandler := handler.NewOTPHandler(otpUC, m)
	userHandler := handler.NewUserHandler(userUC, m)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		OTPHandler:     otpHandler,
		UserHandler:    userHandler,
		LedgerHandler:  ledgerHandler,
		HealthHandler:  healthHandler,
		Logging:        middleware.NewLoggingMiddleware(log.Logger),
		Metrics:        middleware.NewMetricsMiddleware(m),
		OTPRateLimiter: otpRateLimiter,
		SessionAuth:    sessionAuth,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
