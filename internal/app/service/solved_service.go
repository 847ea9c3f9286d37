package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"codetrack/internal/common"
	"codetrack/internal/domain/model"
	"codetrack/internal/domain/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type SolvedService struct {
	solvedRepo  repository.SolvedRepository
	problemRepo repository.ProblemRepository
	db          *sql.DB
}

func NewSolvedService(
	solvedRepo repository.SolvedRepository,
	problemRepo repository.ProblemRepository,
	db *sql.DB,
) *SolvedService {
	return &SolvedService{solvedRepo: solvedRepo, problemRepo: problemRepo, db: db}
}

type RecordSolveRequest struct {
	ProblemKey string                  `json:"problem_id" validate:"required"`
	Title      string                  `json:"title" validate:"required"`
	Tags       []string                `json:"tags"`
	Difficulty model.ProblemDifficulty `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Platform   string                  `json:"platform" validate:"required"`
	URL        *string                 `json:"url,omitempty" validate:"omitempty,url"`
	DateSolved *time.Time              `json:"date_solved,omitempty"`
}

type RecordSolveResponse struct {
	SolvedID string `json:"solved_id"`
}

type ListSolvedRequest struct {
	Tags       []string
	Difficulty model.ProblemDifficulty
	Page       int
	Limit      int
}

// RecordSolve logs a solve, creating the catalog entry first when the
// problem key is unknown. The (user, problem) unique constraint rejects a
// second solve of the same problem as a conflict.
func (s *SolvedService) RecordSolve(ctx context.Context, userID string, req RecordSolveRequest) (*RecordSolveResponse, error) {
	if err := common.ValidateInput(req); err != nil {
		return nil, err
	}

	problem, err := s.problemRepo.FindByKey(ctx, req.ProblemKey)
	if errors.Is(err, common.ErrNotFound) {
		problem, err = s.createProblem(ctx, req)
		if err != nil && errors.Is(err, common.ErrConflict) {
			// Lost a race against a concurrent creator; the row exists now.
			problem, err = s.problemRepo.FindByKey(ctx, req.ProblemKey)
		}
	}
	if err != nil {
		return nil, err
	}

	solvedAt := time.Now()
	if req.DateSolved != nil {
		solvedAt = *req.DateSolved
	}
	record := &model.SolvedProblem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProblemID: problem.ID,
		SolvedAt:  solvedAt,
	}
	if err := s.solvedRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": userID, "problem_key": problem.ProblemKey}).Info("solve recorded")
	return &RecordSolveResponse{SolvedID: record.ID}, nil
}

func (s *SolvedService) createProblem(ctx context.Context, req RecordSolveRequest) (*model.Problem, error) {
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
	defer tx.Rollback()

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
	return problem, nil
}

func (s *SolvedService) ListSolved(ctx context.Context, userID string, req ListSolvedRequest) ([]model.SolvedEntry, int, error) {
	page, limit := normalizePaging(req.Page, req.Limit)
	filter := repository.SolvedFilter{
		Tags:       req.Tags,
		Difficulty: req.Difficulty,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	return s.solvedRepo.List(ctx, userID, filter)
}

// DeleteSolved removes one solved record; only its owner may delete it.
func (s *SolvedService) DeleteSolved(ctx context.Context, userID, solvedID string) error {
	record, err := s.solvedRepo.FindByID(ctx, solvedID)
	if err != nil {
		return err
	}
	if record.UserID != userID {
		return fmt.Errorf("solved record belongs to another user: %w", common.ErrForbidden)
	}
	return s.solvedRepo.Delete(ctx, solvedID)
}
