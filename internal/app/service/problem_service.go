package service

import (
	"context"
	"database/sql"
	"fmt"

	"codetrack/internal/common"
	"codetrack/internal/domain/model"
	"codetrack/internal/domain/repository"

	"github.com/google/uuid"
)

type ProblemService struct {
	problemRepo repository.ProblemRepository
	solvedRepo  repository.SolvedRepository
	db          *sql.DB // For transactions
}

func NewProblemService(
	problemRepo repository.ProblemRepository,
	solvedRepo repository.SolvedRepository,
	db *sql.DB,
) *ProblemService {
	return &ProblemService{problemRepo: problemRepo, solvedRepo: solvedRepo, db: db}
}

type CreateProblemRequest struct {
	ProblemKey string                  `json:"problem_key" validate:"required"`
	Title      string                  `json:"title" validate:"required"`
	Tags       []string                `json:"tags"`
	Difficulty model.ProblemDifficulty `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Platform   string                  `json:"platform" validate:"required"`
	URL        *string                 `json:"url,omitempty" validate:"omitempty,url"`
}

type UpdateProblemRequest struct {
	Title      *string                  `json:"title,omitempty" validate:"omitempty,min=1"`
	Tags       *[]string                `json:"tags,omitempty"`
	Difficulty *model.ProblemDifficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=Easy Medium Hard"`
	Platform   *string                  `json:"platform,omitempty" validate:"omitempty,min=1"`
	URL        *string                  `json:"url,omitempty" validate:"omitempty,url"`
}

type ListProblemsRequest struct {
	Tags       []string
	Difficulty model.ProblemDifficulty
	Platform   string
	Search     string
	Page       int
	Limit      int
}

// CreateProblem inserts an explicit catalog entry. The problem and its tag
// links commit atomically.
func (s *ProblemService) CreateProblem(ctx context.Context, req CreateProblemRequest) (*model.Problem, error) {
	if err := common.ValidateInput(req); err != nil {
		return nil, err
	}

	problem := &model.Problem{
		ID:         uuid.NewString(),
		ProblemKey: req.ProblemKey,
		Title:      req.Title,
		Difficulty: req.Difficulty,
		Platform:   req.Platform,
		URL:        req.URL,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := s.problemRepo.Create(ctx, tx, problem); err != nil {
		return nil, err
	}
	tagIDs, err := s.problemRepo.FindOrCreateTags(ctx, tx, req.Tags)
	if err != nil {
		return nil, err
	}
	if err := s.problemRepo.ReplaceProblemTags(ctx, tx, problem.ID, tagIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}

	return s.problemRepo.FindByID(ctx, problem.ID)
}

// UpdateProblem mutates catalog metadata. Any user holding a solved record
// for the problem may edit it, not just its creator.
func (s *ProblemService) UpdateProblem(ctx context.Context, userID, problemID string, req UpdateProblemRequest) (*model.Problem, error) {
	if err := common.ValidateInput(req); err != nil {
		return nil, err
	}

	problem, err := s.problemRepo.FindByID(ctx, problemID)
	if err != nil {
		return nil, err
	}

	solved, err := s.solvedRepo.HasUserSolvedProblem(ctx, userID, problemID)
	if err != nil {
		return nil, err
	}
	if !solved {
		return nil, fmt.Errorf("only users who solved this problem may edit it: %w", common.ErrForbidden)
	}

	if req.Title != nil {
		problem.Title = *req.Title
	}
	if req.Difficulty != nil {
		problem.Difficulty = *req.Difficulty
	}
	if req.Platform != nil {
		problem.Platform = *req.Platform
	}
	if req.URL != nil {
		problem.URL = req.URL
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.problemRepo.Update(ctx, tx, problem); err != nil {
		return nil, err
	}
	if req.Tags != nil {
		tagIDs, err := s.problemRepo.FindOrCreateTags(ctx, tx, *req.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.problemRepo.ReplaceProblemTags(ctx, tx, problem.ID, tagIDs); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}

	return s.problemRepo.FindByID(ctx, problem.ID)
}

func (s *ProblemService) ListProblems(ctx context.Context, req ListProblemsRequest) ([]model.Problem, int, error) {
	page, limit := normalizePaging(req.Page, req.Limit)
	filter := repository.ProblemFilter{
		Tags:       req.Tags,
		Difficulty: req.Difficulty,
		Platform:   req.Platform,
		Search:     req.Search,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	return s.problemRepo.List(ctx, filter)
}

// normalizePaging clamps page/limit to the 1..100 window the API accepts.
func normalizePaging(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return page, limit
}
