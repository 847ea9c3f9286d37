package model

import (
	"time"
)

type ProblemDifficulty string

const (
	DifficultyEasy   ProblemDifficulty = "Easy"
	DifficultyMedium ProblemDifficulty = "Medium"
	DifficultyHard   ProblemDifficulty = "Hard"
)

// Problem is one catalog entry. ProblemKey is the caller-supplied external
// identifier (e.g. "LC-1"); ID is the internal row id referenced by
// solved records.
type Problem struct {
	ID         string            `json:"id"`
	ProblemKey string            `json:"problem_key"`
	Title      string            `json:"title"`
	Difficulty ProblemDifficulty `json:"difficulty"`
	Platform   string            `json:"platform"`
	URL        *string           `json:"url,omitempty"`
	Tags       []string          `json:"tags"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
