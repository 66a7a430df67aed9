package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/fr76/bankledger/internal/adapter/http"
	"github.com/fr76/bankledger/internal/adapter/http/handler"
	postgresRepo "github.com/fr76/bankledger/internal/adapter/repository/postgres"
	redisRepo "github.com/fr76/bankledger/internal/adapter/repository/redis"
	"github.com/fr76/bankledger/internal/infrastructure/auth"
	"github.com/fr76/bankledger/internal/infrastructure/config"
	"github.com/fr76/bankledger/internal/infrastructure/metrics"
	"github.com/fr76/bankledger/internal/infrastructure/notifier"
	"github.com/fr76/bankledger/internal/infrastructure/postgres"
	"github.com/fr76/bankledger/internal/infrastructure/redis"
	"github.com/fr76/bankledger/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_FORMAT") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
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

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	numberGen := postgresRepo.NewRandomNumberGenerator()

	m := metrics.New()
	logNotifier := notifier.NewLogNotifier(log.Logger)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen, numberGen, m)
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, transactionRepo, idGen, logNotifier, m, log.Logger).
		WithRetrier(postgresRepo.NewRetrier())
	transactionUC := usecase.NewTransactionUseCase(accountRepo, transactionRepo)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	adminHandler := handler.NewAdminHandler(accountUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	} else {
		log.Warn().Msg("authentication disabled, all requests run as local admin")
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		LedgerHandler:      ledgerHandler,
		TransactionHandler: transactionHandler,
		AdminHandler:       adminHandler,
		HealthHandler:      healthHandler,
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Logger:             log.Logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
