package service

import (
	"context"
	"fmt"
	"strings"

	"codetrack/internal/common"
	"codetrack/internal/common/security"
	"codetrack/internal/domain/model"
	"codetrack/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileRequest struct {
	Username    *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	WeeklyGoal  *int    `json:"weekly_goal,omitempty" validate:"omitempty,min=0"`
	MonthlyGoal *int    `json:"monthly_goal,omitempty" validate:"omitempty,min=0"`
	EasyGoal    *int    `json:"easy_goal,omitempty" validate:"omitempty,min=0"`
	MediumGoal  *int    `json:"medium_goal,omitempty" validate:"omitempty,min=0"`
	Theme       *string `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// UpdateProfile applies only the fields present in the request.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*model.User, error) {
	if err := common.ValidateInput(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.WeeklyGoal != nil {
		user.WeeklyGoal = *req.WeeklyGoal
	}
	if req.MonthlyGoal != nil {
		user.MonthlyGoal = *req.MonthlyGoal
	}
	if req.EasyGoal != nil {
		user.EasyGoal = *req.EasyGoal
	}
	if req.MediumGoal != nil {
		user.MediumGoal = *req.MediumGoal
	}
	if req.Theme != nil {
		user.Theme = *req.Theme
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if err := common.ValidateInput(req); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !security.CheckPasswordHash(req.CurrentPassword, user.HashedPassword) {
		return fmt.Errorf("current password incorrect: %w", common.ErrBadRequest)
	}

	hashed, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}
