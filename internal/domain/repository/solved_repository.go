package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"codetrack/internal/common"
	"codetrack/internal/domain/model"

	"github.com/lib/pq"
)

type SolvedFilter struct {
	Tags       []string
	Difficulty model.ProblemDifficulty
	Limit      int
	Offset     int
}

type SolvedRepository interface {
	Create(ctx context.Context, record *model.SolvedProblem) error
	FindByID(ctx context.Context, id string) (*model.SolvedProblem, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, userID string, filter SolvedFilter) ([]model.SolvedEntry, int, error)
	HasUserSolvedProblem(ctx context.Context, userID, problemID string) (bool, error)
}

type pgSolvedRepository struct {
	db *sql.DB
}

func NewPgSolvedRepository(db *sql.DB) SolvedRepository {
	return &pgSolvedRepository{db: db}
}

func (r *pgSolvedRepository) Create(ctx context.Context, record *model.SolvedProblem) error {
	query := `INSERT INTO solved_problems (id, user_id, problem_id, solved_at)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, record.ID, record.UserID, record.ProblemID, record.SolvedAt)
	if err != nil {
		// The (user_id, problem_id) unique constraint is the only writer
		// coordination; a concurrent duplicate lands here too.
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("solve already recorded for this problem: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgSolvedRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSolvedRepository) FindByID(ctx context.Context, id string) (*model.SolvedProblem, error) {
	query := `SELECT id, user_id, problem_id, solved_at, created_at
	          FROM solved_problems WHERE id = $1`
	record := &model.SolvedProblem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID, &record.UserID, &record.ProblemID, &record.SolvedAt, &record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSolvedRepository.FindByID: %w", err)
	}
	return record, nil
}

func (r *pgSolvedRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM solved_problems WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgSolvedRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// List returns the user's solved records joined with their problems, newest
// solve first, with the unpaginated total for the same filters.
func (r *pgSolvedRepository) List(ctx context.Context, userID string, filter SolvedFilter) ([]model.SolvedEntry, int, error) {
	conditions := []string{"s.user_id = $1"}
	args := []interface{}{userID}
	argID := 2

	if filter.Difficulty != "" {
		conditions = append(conditions, fmt.Sprintf("p.difficulty = $%d", argID))
		args = append(args, filter.Difficulty)
		argID++
	}
	if len(filter.Tags) > 0 {
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM problem_tags fpt JOIN tags ft ON ft.id = fpt.tag_id
			         WHERE fpt.problem_id = p.id AND ft.name = ANY($%d))`, argID))
		args = append(args, pq.Array(filter.Tags))
		argID++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM solved_problems s JOIN problems p ON p.id = s.problem_id` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgSolvedRepository.List count: %w", err)
	}

	query := `
	SELECT s.id, s.solved_at,
	       p.id, p.problem_key, p.title, p.difficulty, p.platform, p.url,
	       COALESCE(array_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL), '{}'),
	       p.created_at, p.updated_at
	FROM solved_problems s
	JOIN problems p ON p.id = s.problem_id
	LEFT JOIN problem_tags pt ON pt.problem_id = p.id
	LEFT JOIN tags t ON t.id = pt.tag_id` + whereClause +
		fmt.Sprintf(` GROUP BY s.id, p.id ORDER BY s.solved_at DESC, s.id LIMIT $%d OFFSET $%d`, argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgSolvedRepository.List query: %w", err)
	}
	defer rows.Close()

	entries := []model.SolvedEntry{}
	for rows.Next() {
		var e model.SolvedEntry
		if err := rows.Scan(
			&e.ID, &e.SolvedAt,
			&e.Problem.ID, &e.Problem.ProblemKey, &e.Problem.Title, &e.Problem.Difficulty,
			&e.Problem.Platform, &e.Problem.URL, pq.Array(&e.Problem.Tags),
			&e.Problem.CreatedAt, &e.Problem.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("pgSolvedRepository.List scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgSolvedRepository.List rows.Err: %w", err)
	}
	return entries, total, nil
}

func (r *pgSolvedRepository) HasUserSolvedProblem(ctx context.Context, userID, problemID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM solved_problems WHERE user_id = $1 AND problem_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, userID, problemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("pgSolvedRepository.HasUserSolvedProblem: %w", err)
	}
	return exists, nil
}
