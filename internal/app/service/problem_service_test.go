package service

import (
	"context"
	"errors"
	"testing"

	"codetrack/internal/common"
	"codetrack/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Any user holding a solved record may edit a problem's metadata, not just
// its creator. The check runs before any write is attempted.
func TestProblemService_UpdateProblem_OwnershipViaSolve(t *testing.T) {
	problem := &model.Problem{ID: "p1", ProblemKey: "LC-1", Title: "Two Sum"}
	title := "Two Sum (updated)"

	t.Run("a non-solver is forbidden", func(t *testing.T) {
		problemRepo := new(MockProblemRepository)
		solvedRepo := new(MockSolvedRepository)
		problemRepo.On("FindByID", mock.Anything, "p1").Return(problem, nil)
		solvedRepo.On("HasUserSolvedProblem", mock.Anything, "u1", "p1").Return(false, nil)

		svc := NewProblemService(problemRepo, solvedRepo, nil)
		_, err := svc.UpdateProblem(context.Background(), "u1", "p1", UpdateProblemRequest{Title: &title})

		assert.True(t, errors.Is(err, common.ErrForbidden))
		problemRepo.AssertExpectations(t)
		solvedRepo.AssertExpectations(t)
	})

	t.Run("an unknown problem is not found", func(t *testing.T) {
		problemRepo := new(MockProblemRepository)
		problemRepo.On("FindByID", mock.Anything, "missing").Return(nil, common.ErrNotFound)

		svc := NewProblemService(problemRepo, new(MockSolvedRepository), nil)
		_, err := svc.UpdateProblem(context.Background(), "u1", "missing", UpdateProblemRequest{Title: &title})

		assert.True(t, errors.Is(err, common.ErrNotFound))
		problemRepo.AssertExpectations(t)
	})

	t.Run("an invalid difficulty fails validation first", func(t *testing.T) {
		bad := model.ProblemDifficulty("Impossible")
		svc := NewProblemService(new(MockProblemRepository), new(MockSolvedRepository), nil)
		_, err := svc.UpdateProblem(context.Background(), "u1", "p1", UpdateProblemRequest{Difficulty: &bad})

		assert.True(t, errors.Is(err, common.ErrValidation))
	})
}
