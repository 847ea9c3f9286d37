package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"codetrack/internal/common"
	"codetrack/internal/common/security"
	"codetrack/internal/domain/model"
	"codetrack/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:     []byte("test-secret"),
		JWTExp:     time.Hour,
		AdminEmail: "admin@example.com",
	}
	security.InitJWT()
}

func TestAuthService_Register(t *testing.T) {
	setupAuthConfig(t)

	tests := []struct {
		name          string
		req           RegisterRequest
		setupMock     func(*MockUserRepository)
		expectedRole  string
		expectedError error
	}{
		{
			name: "successful registration",
			req:  RegisterRequest{Username: "alice", Email: "Alice@Example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "alice@example.com" && u.Role == model.RoleUser
				})).Return(nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name: "configured admin email is promoted",
			req:  RegisterRequest{Username: "admin", Email: "admin@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Role == model.RoleAdmin
				})).Return(nil)
			},
			expectedRole: model.RoleAdmin,
		},
		{
			name: "duplicate username or email conflicts",
			req:  RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(fmt.Errorf("user already exists: %w", common.ErrConflict))
			},
			expectedError: common.ErrConflict,
		},
		{
			name:          "short password fails validation",
			req:           RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "short"},
			setupMock:     func(*MockUserRepository) {},
			expectedError: common.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMock(userRepo)

			svc := NewAuthService(userRepo)
			resp, err := svc.Register(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError))
				assert.Nil(t, resp)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, tt.expectedRole, resp.User.Role)
				assert.Empty(t, resp.User.HashedPassword)
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	setupAuthConfig(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &model.User{
		ID:             "u1",
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: string(hashed),
		Role:           model.RoleUser,
	}

	tests := []struct {
		name          string
		req           LoginRequest
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful login",
			req:  LoginRequest{Email: "alice@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				u := *user
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(&u, nil)
			},
		},
		{
			name: "unknown email is unauthorized",
			req:  LoginRequest{Email: "nobody@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, common.ErrNotFound)
			},
			expectedError: common.ErrUnauthorized,
		},
		{
			name: "wrong password is unauthorized",
			req:  LoginRequest{Email: "alice@example.com", Password: "wrongpass"},
			setupMock: func(m *MockUserRepository) {
				u := *user
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(&u, nil)
			},
			expectedError: common.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMock(userRepo)

			svc := NewAuthService(userRepo)
			resp, err := svc.Login(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError))
				assert.Nil(t, resp)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, "alice", resp.User.Username)
			}
			userRepo.AssertExpectations(t)
		})
	}
}
