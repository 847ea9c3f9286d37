package service

import (
	"context"
	"database/sql"
	"time"

	"codetrack/internal/domain/model"
	"codetrack/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	args := m.Called(ctx, id, hashedPassword)
	return args.Error(0)
}

// MockProblemRepository is a mock implementation of repository.ProblemRepository.
type MockProblemRepository struct {
	mock.Mock
}

func (m *MockProblemRepository) Create(ctx context.Context, tx *sql.Tx, problem *model.Problem) error {
	args := m.Called(ctx, tx, problem)
	return args.Error(0)
}

func (m *MockProblemRepository) Update(ctx context.Context, tx *sql.Tx, problem *model.Problem) error {
	args := m.Called(ctx, tx, problem)
	return args.Error(0)
}

func (m *MockProblemRepository) FindByID(ctx context.Context, id string) (*model.Problem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Problem), args.Error(1)
}

func (m *MockProblemRepository) FindByKey(ctx context.Context, problemKey string) (*model.Problem, error) {
	args := m.Called(ctx, problemKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Problem), args.Error(1)
}

func (m *MockProblemRepository) List(ctx context.Context, filter repository.ProblemFilter) ([]model.Problem, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Problem), args.Int(1), args.Error(2)
}

func (m *MockProblemRepository) ListNewest(ctx context.Context, limit int) ([]model.Problem, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Problem), args.Error(1)
}

func (m *MockProblemRepository) ListUnsolvedByTags(ctx context.Context, userID string, tags []string, limit int) ([]model.Problem, error) {
	args := m.Called(ctx, userID, tags, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Problem), args.Error(1)
}

func (m *MockProblemRepository) FindOrCreateTags(ctx context.Context, tx *sql.Tx, names []string) ([]string, error) {
	args := m.Called(ctx, tx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProblemRepository) ReplaceProblemTags(ctx context.Context, tx *sql.Tx, problemID string, tagIDs []string) error {
	args := m.Called(ctx, tx, problemID, tagIDs)
	return args.Error(0)
}

// MockSolvedRepository is a mock implementation of repository.SolvedRepository.
type MockSolvedRepository struct {
	mock.Mock
}

func (m *MockSolvedRepository) Create(ctx context.Context, record *model.SolvedProblem) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSolvedRepository) FindByID(ctx context.Context, id string) (*model.SolvedProblem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SolvedProblem), args.Error(1)
}

func (m *MockSolvedRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSolvedRepository) List(ctx context.Context, userID string, filter repository.SolvedFilter) ([]model.SolvedEntry, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.SolvedEntry), args.Int(1), args.Error(2)
}

func (m *MockSolvedRepository) HasUserSolvedProblem(ctx context.Context, userID, problemID string) (bool, error) {
	args := m.Called(ctx, userID, problemID)
	return args.Bool(0), args.Error(1)
}

// MockProgressRepository is a mock implementation of repository.ProgressRepository.
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) CountSolved(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressRepository) CountByDifficulty(ctx context.Context, userID string) ([]model.BucketCount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BucketCount), args.Error(1)
}

func (m *MockProgressRepository) CountByTag(ctx context.Context, userID string, limit int) ([]model.BucketCount, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BucketCount), args.Error(1)
}

func (m *MockProgressRepository) TimelineCounts(ctx context.Context, userID string, since time.Time) ([]model.DayCount, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DayCount), args.Error(1)
}
