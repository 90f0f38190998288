package service

import (
	"context"

	"github.com/1013vishalsharma/payment-api/internal/domain"
	"github.com/1013vishalsharma/payment-api/internal/dto"
	"github.com/1013vishalsharma/payment-api/internal/repository"
	"github.com/1013vishalsharma/payment-api/internal/token"
	"github.com/1013vishalsharma/payment-api/pkg/logger"
	"github.com/1013vishalsharma/payment-api/pkg/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// UserService defines the interface for user registration and login
type UserService interface {
	// Register registers a new user
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error)
	// Login authenticates a user and issues a signed token
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// FindUserByEmail retrieves a user by email
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// userService implements UserService
type userService struct {
	userRepo repository.UserRepository
	tokens   *token.Service
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, tokens *token.Service) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register registers a new user
func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.register")
	defer span.End()

	span.SetAttributes(attribute.String("email", req.Email))
	logger.Get().Info("Registering new user", zap.String("email", req.Email))

	user := &domain.User{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and issues a signed token. The password
// check intentionally fails closed: a wrong password and an unknown
// user surface as distinct errors, matching the API contract.
func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.login")
	defer span.End()

	span.SetAttributes(attribute.String("email", req.Email))
	logger.Get().Info("User login attempt", zap.String("email", req.Email))

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if user.Password != req.Password {
		span.SetStatus(codes.Error, "password mismatch")
		return nil, domain.ErrBadCredentials
	}

	signed, err := s.tokens.Generate(user.Name, user.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &dto.TokenResponse{Token: signed}, nil
}

// FindUserByEmail retrieves a user by email
func (s *userService) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.find_by_email")
	defer span.End()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return user, nil
}
