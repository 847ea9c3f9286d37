package service

import (
	"context"
	"errors"
	"testing"

	"codetrack/internal/common"
	"codetrack/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_UpdateProfile(t *testing.T) {
	existing := func() *model.User {
		return &model.User{
			ID:       "u1",
			Username: "alice",
			Email:    "alice@example.com",
			Theme:    model.ThemeLight,
		}
	}

	t.Run("applies only fields present in the request", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, "u1").Return(existing(), nil)
		userRepo.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "alice" && u.Email == "new@example.com" &&
				u.WeeklyGoal == 5 && u.Theme == model.ThemeDark
		})).Return(nil)

		email := "New@Example.com"
		goal := 5
		theme := model.ThemeDark
		svc := NewUserService(userRepo)
		user, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileRequest{
			Email:      &email,
			WeeklyGoal: &goal,
			Theme:      &theme,
		})

		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects an invalid theme", func(t *testing.T) {
		theme := "solarized"
		svc := NewUserService(new(MockUserRepository))
		_, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileRequest{Theme: &theme})
		assert.True(t, errors.Is(err, common.ErrValidation))
	})

	t.Run("rejects a negative goal", func(t *testing.T) {
		goal := -1
		svc := NewUserService(new(MockUserRepository))
		_, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileRequest{WeeklyGoal: &goal})
		assert.True(t, errors.Is(err, common.ErrValidation))
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	user := func() *model.User {
		return &model.User{ID: "u1", HashedPassword: string(hashed)}
	}

	t.Run("rehashes on correct current password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, "u1").Return(user(), nil)
		userRepo.On("UpdatePassword", mock.Anything, "u1", mock.MatchedBy(func(h string) bool {
			return bcrypt.CompareHashAndPassword([]byte(h), []byte("newpassword")) == nil
		})).Return(nil)

		svc := NewUserService(userRepo)
		err := svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{
			CurrentPassword: "oldpassword",
			NewPassword:     "newpassword",
		})
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, "u1").Return(user(), nil)

		svc := NewUserService(userRepo)
		err := svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "newpassword",
		})
		assert.True(t, errors.Is(err, common.ErrBadRequest))
		userRepo.AssertExpectations(t)
	})
}
