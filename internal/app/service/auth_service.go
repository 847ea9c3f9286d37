package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"codetrack/internal/common"
	"codetrack/internal/common/security"
	"codetrack/internal/domain/model"
	"codetrack/internal/domain/repository"
	"codetrack/internal/platform/cache"
	"codetrack/internal/platform/config"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := common.ValidateInput(req); err != nil {
		return nil, err
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	email := strings.ToLower(req.Email)
	role := model.RoleUser
	if adminEmail := config.AppConfig.AdminEmail; adminEmail != "" && email == adminEmail {
		role = model.RoleAdmin
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           role,
		Theme:          model.ThemeLight,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.WithField("user_id", user.ID).Info("user registered")
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := common.ValidateInput(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

// Logout denylists the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims map[string]interface{}) error {
	tokenID, err := security.GetTokenIDFromClaims(claims)
	if err != nil {
		return common.ErrUnauthorized
	}
	expiry, err := security.GetExpiryFromClaims(claims)
	if err != nil {
		return common.ErrUnauthorized
	}
	if err := cache.RevokeToken(ctx, tokenID, time.Until(expiry)); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
