package di

import (
	"github.com/1013vishalsharma/payment-api/internal/auth"
	"github.com/1013vishalsharma/payment-api/internal/handler"
	"github.com/1013vishalsharma/payment-api/internal/repository"
	"github.com/1013vishalsharma/payment-api/internal/service"
	"github.com/1013vishalsharma/payment-api/internal/strategy"
	"github.com/1013vishalsharma/payment-api/internal/token"
	"github.com/1013vishalsharma/payment-api/pkg/database"
	"github.com/1013vishalsharma/payment-api/pkg/redis"
)

// Container holds all dependencies for the payment API
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	UserRepo        repository.UserRepository
	TransactionRepo repository.TransactionRepository

	// Core components
	TokenService     *token.Service
	AuthRegistry     *auth.Registry
	StrategyRegistry *strategy.Registry

	// Services
	UserService    service.UserService
	PaymentService service.PaymentService

	// Handlers
	UserHandler    *handler.UserHandler
	PaymentHandler *handler.PaymentHandler
	HealthHandler  *handler.HealthHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB              *database.PostgresDB
	Redis           *redis.Client
	UserRepo        repository.UserRepository
	TransactionRepo repository.TransactionRepository
	TokenService    *token.Service
	ServiceName     string
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:              cfg.DB,
		Redis:           cfg.Redis,
		UserRepo:        cfg.UserRepo,
		TransactionRepo: cfg.TransactionRepo,
		TokenService:    cfg.TokenService,
	}

	c.StrategyRegistry = strategy.NewRegistry(
		strategy.NewCreditCardStrategy(),
		strategy.NewPayPalStrategy(),
	)

	c.UserService = service.NewUserService(c.UserRepo, c.TokenService)
	c.PaymentService = service.NewPaymentService(c.TransactionRepo, c.StrategyRegistry)

	c.AuthRegistry = auth.NewRegistry()
	c.AuthRegistry.Register(auth.CredentialKindBearer,
		auth.NewBearerProvider(c.TokenService, c.UserService))

	c.UserHandler = handler.NewUserHandler(c.UserService)
	c.PaymentHandler = handler.NewPaymentHandler(c.PaymentService)

	checks := make(map[string]handler.HealthChecker)
	if c.DB != nil {
		checks["postgres"] = c.DB.HealthCheck
	}
	if c.Redis != nil {
		checks["redis"] = c.Redis.HealthCheck
	}
	c.HealthHandler = handler.NewHealthHandler(cfg.ServiceName, checks)

	return c
}
