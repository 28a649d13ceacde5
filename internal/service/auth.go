package service

import (
	"context"
	"errors"
	"fmt"

	. "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/teamly/teamly/internal/auth"
	"github.com/teamly/teamly/internal/domain"
	"github.com/teamly/teamly/internal/pkg/logger"
	"github.com/teamly/teamly/internal/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
	logger   *logger.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	logger *logger.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger.Component("service/auth"),
	}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (in *RegisterInput) validate() error {
	return ValidateStruct(in,
		Field(&in.Email, Required, is.Email, Length(3, 255)),
		Field(&in.Password, Required, Length(8, 72)),
		Field(&in.FullName, Length(0, 255)),
	)
}

func (s *AuthService) Register(ctx context.Context, in *RegisterInput) (*domain.User, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:    in.Email,
		FullName: in.FullName,
		Role:     domain.RoleUser,
		IsActive: true,
	}

	created, err := s.userRepo.Create(ctx, user, hash)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", created.ID,
		"email", created.Email,
	)

	return created, nil
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, hash, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	ok, err := s.hasher.Verify(password, hash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &LoginResponse{AccessToken: token, TokenType: "bearer"}, nil
}
