package service

import (
	"context"

	"codetrack/internal/domain/model"
	"codetrack/internal/domain/repository"
)

const (
	// recommendTagLimit is a hard cap distinct from the summary's 20.
	recommendTagLimit      = 10
	recommendItemLimit     = 20
	recommendFallbackLimit = 10
)

// RecommendationService suggests unsolved problems matching the tags the
// user practices most. Frequency counting only; no recency weighting or
// difficulty progression.
type RecommendationService struct {
	progressRepo repository.ProgressRepository
	problemRepo  repository.ProblemRepository
}

func NewRecommendationService(
	progressRepo repository.ProgressRepository,
	problemRepo repository.ProblemRepository,
) *RecommendationService {
	return &RecommendationService{progressRepo: progressRepo, problemRepo: problemRepo}
}

type RecommendationResponse struct {
	TagsUsed []string        `json:"tags_used"`
	Items    []model.Problem `json:"items"`
}

// RecommendNext returns unsolved problems sharing the user's top tags. A
// user with no solved history gets the newest catalog problems instead, so
// the response is only empty when the catalog itself is.
func (s *RecommendationService) RecommendNext(ctx context.Context, userID string) (*RecommendationResponse, error) {
	tagStats, err := s.progressRepo.CountByTag(ctx, userID, recommendTagLimit)
	if err != nil {
		return nil, err
	}

	if len(tagStats) == 0 {
		items, err := s.problemRepo.ListNewest(ctx, recommendFallbackLimit)
		if err != nil {
			return nil, err
		}
		return &RecommendationResponse{TagsUsed: []string{}, Items: items}, nil
	}

	topTags := make([]string, 0, len(tagStats))
	for _, stat := range tagStats {
		topTags = append(topTags, stat.Key)
	}

	items, err := s.problemRepo.ListUnsolvedByTags(ctx, userID, topTags, recommendItemLimit)
	if err != nil {
		return nil, err
	}
	return &RecommendationResponse{TagsUsed: topTags, Items: items}, nil
}
