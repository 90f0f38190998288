package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1013vishalsharma/payment-api/internal/config"
	"github.com/1013vishalsharma/payment-api/internal/di"
	"github.com/1013vishalsharma/payment-api/internal/middleware"
	"github.com/1013vishalsharma/payment-api/internal/repository"
	"github.com/1013vishalsharma/payment-api/internal/token"
	"github.com/1013vishalsharma/payment-api/pkg/database"
	"github.com/1013vishalsharma/payment-api/pkg/logger"
	pkgredis "github.com/1013vishalsharma/payment-api/pkg/redis"
	"github.com/1013vishalsharma/payment-api/pkg/telemetry"
	"github.com/gin-gonic/gin"
)

// devJWTSecret is only used outside production, where config validation
// requires an explicit JWT_SECRET.
const devJWTSecret = "payment-api-dev-secret"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(&logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Payment API...")

	ctx := context.Background()

	// Initialize tracing
	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		appLog.Warn(fmt.Sprintf("Telemetry initialization failed: %v", err))
	}
	defer telemetry.Shutdown(ctx)

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxConns),
		MinConns:        int32(cfg.Database.MinConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Warn(fmt.Sprintf("Database connection failed: %v", err))
		db = nil
	} else {
		defer db.Close()
		appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

		if err := database.RunMigrations(dbCfg.URL()); err != nil {
			appLog.Fatal(fmt.Sprintf("Migrations failed: %v", err))
		}
		appLog.Info("Database migrations applied")
	}

	// Initialize Redis (optional, distributed rate limiting only)
	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(ctx, &pkgredis.Config{
			Host:          cfg.Redis.Host,
			Port:          cfg.Redis.Port,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.DB,
			PoolSize:      50,
			DialTimeout:   5 * time.Second,
			ReadTimeout:   3 * time.Second,
			WriteTimeout:  3 * time.Second,
			MaxRetries:    3,
			RetryInterval: time.Second,
		})
		if err != nil {
			appLog.Warn(fmt.Sprintf("Redis connection failed: %v", err))
		} else {
			defer redisClient.Close()
			appLog.Info("Redis connected")
		}
	}

	// Repositories fall back to in-memory storage when the database is
	// unreachable, so local development works without infrastructure.
	var userRepo repository.UserRepository
	var txnRepo repository.TransactionRepository
	if db != nil {
		userRepo = repository.NewPostgresUserRepository(db)
		txnRepo = repository.NewPostgresTransactionRepository(db)
		appLog.Info("Using PostgreSQL repositories")
	} else {
		userRepo = repository.NewMemoryUserRepository()
		txnRepo = repository.NewMemoryTransactionRepository()
		appLog.Warn("Using in-memory repositories (data will not persist)")
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		secret = devJWTSecret
		appLog.Warn("JWT_SECRET not set, using development secret")
	}
	tokenService := token.NewService([]byte(secret), cfg.JWT.TokenTTL)

	container := di.NewContainer(&di.ContainerConfig{
		DB:              db,
		Redis:           redisClient,
		UserRepo:        userRepo,
		TransactionRepo: txnRepo,
		TokenService:    tokenService,
		ServiceName:     cfg.App.Name,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogging())

	rateLimitCfg := middleware.DefaultRateLimitConfig()
	if redisClient != nil {
		rateLimitCfg.UseRedis = true
		rateLimitCfg.RedisClient = redisClient
	}
	router.Use(middleware.RateLimiter(rateLimitCfg))

	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	users := router.Group("/api/users")
	{
		users.POST("/register", container.UserHandler.Register)
		users.POST("/login", container.UserHandler.Login)
	}

	payments := router.Group("/api/payments")
	payments.Use(middleware.Authentication(container.AuthRegistry))
	{
		payments.POST("", container.PaymentHandler.MakePayment)
		payments.GET("/history", container.PaymentHandler.TransactionHistory)
		payments.GET("/:id/status", container.PaymentHandler.TransactionStatus)
		payments.POST("/:id/refund", container.PaymentHandler.Refund)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		appLog.Info(fmt.Sprintf("Payment API listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
