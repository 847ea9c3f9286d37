package service

import (
	"context"
	"testing"

	"codetrack/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRecommendationService_RecommendNext(t *testing.T) {
	newest := []model.Problem{
		{ID: "p1", ProblemKey: "LC-1", Title: "Two Sum"},
		{ID: "p2", ProblemKey: "LC-3", Title: "Longest Substring Without Repeating Characters"},
	}
	tagged := []model.Problem{
		{ID: "p3", ProblemKey: "LC-15", Title: "3Sum", Tags: []string{"array"}},
	}

	tests := []struct {
		name         string
		setupMock    func(*MockProgressRepository, *MockProblemRepository)
		expectedTags []string
		expectedIDs  []string
	}{
		{
			name: "no solved history falls back to newest problems",
			setupMock: func(progress *MockProgressRepository, problems *MockProblemRepository) {
				progress.On("CountByTag", mock.Anything, "u1", 10).Return([]model.BucketCount{}, nil)
				problems.On("ListNewest", mock.Anything, 10).Return(newest, nil)
			},
			expectedTags: []string{},
			expectedIDs:  []string{"p1", "p2"},
		},
		{
			name: "top tags drive the unsolved-problem query",
			setupMock: func(progress *MockProgressRepository, problems *MockProblemRepository) {
				progress.On("CountByTag", mock.Anything, "u1", 10).Return([]model.BucketCount{
					{Key: "array", Count: 3},
					{Key: "dp", Count: 1},
				}, nil)
				problems.On("ListUnsolvedByTags", mock.Anything, "u1", []string{"array", "dp"}, 20).
					Return(tagged, nil)
			},
			expectedTags: []string{"array", "dp"},
			expectedIDs:  []string{"p3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progressRepo := new(MockProgressRepository)
			problemRepo := new(MockProblemRepository)
			tt.setupMock(progressRepo, problemRepo)

			svc := NewRecommendationService(progressRepo, problemRepo)
			resp, err := svc.RecommendNext(context.Background(), "u1")

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedTags, resp.TagsUsed)
			ids := make([]string, 0, len(resp.Items))
			for _, p := range resp.Items {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)

			progressRepo.AssertExpectations(t)
			problemRepo.AssertExpectations(t)
		})
	}
}

func TestRecommendationService_RecommendNext_StorageError(t *testing.T) {
	progressRepo := new(MockProgressRepository)
	problemRepo := new(MockProblemRepository)
	progressRepo.On("CountByTag", mock.Anything, "u1", 10).Return(nil, assert.AnError)

	svc := NewRecommendationService(progressRepo, problemRepo)
	resp, err := svc.RecommendNext(context.Background(), "u1")

	assert.Error(t, err)
	assert.Nil(t, resp)
	progressRepo.AssertExpectations(t)
}
