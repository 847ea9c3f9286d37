package model

import (
	"time"
)

// SolvedProblem links a user to a problem they completed. At most one row
// per (user, problem) pair; a second solve attempt is a conflict.
type SolvedProblem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProblemID string    `json:"problem_id"`
	SolvedAt  time.Time `json:"solved_at"`
	CreatedAt time.Time `json:"created_at"`
}

// SolvedEntry is a solved record joined with its problem, as returned by
// the solved list endpoint.
type SolvedEntry struct {
	ID       string    `json:"id"`
	SolvedAt time.Time `json:"solved_at"`
	Problem  Problem   `json:"problem"`
}
