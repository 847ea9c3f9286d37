package service

import (
	"context"
	"time"

	"codetrack/internal/domain/model"
	"codetrack/internal/domain/repository"
)

const (
	// summaryTagLimit caps the summary's tag buckets; the recommender uses
	// its own, smaller cap.
	summaryTagLimit = 20

	defaultTimelineDays = 90
	maxTimelineDays     = 365
)

// ProgressService computes the read-only aggregations over a user's solved
// history. Each call either returns the complete grouped result or fails;
// there are no partial buckets.
type ProgressService struct {
	progressRepo repository.ProgressRepository
}

func NewProgressService(progressRepo repository.ProgressRepository) *ProgressService {
	return &ProgressService{progressRepo: progressRepo}
}

type TimelineResponse struct {
	Items []model.DayCount `json:"items"`
}

func (s *ProgressService) Summary(ctx context.Context, userID string) (*model.ProgressSummary, error) {
	total, err := s.progressRepo.CountSolved(ctx, userID)
	if err != nil {
		return nil, err
	}
	byDifficulty, err := s.progressRepo.CountByDifficulty(ctx, userID)
	if err != nil {
		return nil, err
	}
	byTag, err := s.progressRepo.CountByTag(ctx, userID, summaryTagLimit)
	if err != nil {
		return nil, err
	}
	return &model.ProgressSummary{
		Total:        total,
		ByDifficulty: byDifficulty,
		ByTag:        byTag,
	}, nil
}

// Timeline buckets the user's solves by UTC calendar day over the trailing
// window. Days outside 1..365 fall back to the 90-day default.
func (s *ProgressService) Timeline(ctx context.Context, userID string, days int) (*TimelineResponse, error) {
	if days <= 0 || days > maxTimelineDays {
		days = defaultTimelineDays
	}
	since := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	items, err := s.progressRepo.TimelineCounts(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return &TimelineResponse{Items: items}, nil
}
