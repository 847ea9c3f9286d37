package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"codetrack/internal/common"
	"codetrack/internal/domain/model"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lib/pq" // array binding/scanning for tag lists
)

type ProblemFilter struct {
	Tags       []string
	Difficulty model.ProblemDifficulty
	Platform   string
	Search     string
	Limit      int
	Offset     int
}

type ProblemRepository interface {
	Create(ctx context.Context, tx *sql.Tx, problem *model.Problem) error
	Update(ctx context.Context, tx *sql.Tx, problem *model.Problem) error
	FindByID(ctx context.Context, id string) (*model.Problem, error)
	FindByKey(ctx context.Context, problemKey string) (*model.Problem, error)
	List(ctx context.Context, filter ProblemFilter) ([]model.Problem, int, error)
	ListNewest(ctx context.Context, limit int) ([]model.Problem, error)
	ListUnsolvedByTags(ctx context.Context, userID string, tags []string, limit int) ([]model.Problem, error)

	FindOrCreateTags(ctx context.Context, tx *sql.Tx, names []string) ([]string, error)
	ReplaceProblemTags(ctx context.Context, tx *sql.Tx, problemID string, tagIDs []string) error
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

// problemSelect aggregates tag names per problem; COALESCE keeps untagged
// problems scannable as an empty array.
const problemSelect = `
	SELECT p.id, p.problem_key, p.title, p.difficulty, p.platform, p.url,
	       COALESCE(array_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL), '{}'),
	       p.created_at, p.updated_at
	FROM problems p
	LEFT JOIN problem_tags pt ON pt.problem_id = p.id
	LEFT JOIN tags t ON t.id = pt.tag_id`

func (r *pgProblemRepository) Create(ctx context.Context, tx *sql.Tx, p *model.Problem) error {
	query := `INSERT INTO problems (id, problem_key, title, difficulty, platform, url)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, p.ID, p.ProblemKey, p.Title, p.Difficulty, p.Platform, p.URL)
	} else {
		_, err = r.db.ExecContext(ctx, query, p.ID, p.ProblemKey, p.Title, p.Difficulty, p.Platform, p.URL)
	}
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("problem with this key already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgProblemRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProblemRepository) Update(ctx context.Context, tx *sql.Tx, p *model.Problem) error {
	query := `UPDATE problems SET
	              title = $1, difficulty = $2, platform = $3, url = $4, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $5`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, p.Title, p.Difficulty, p.Platform, p.URL, p.ID)
	} else {
		_, err = r.db.ExecContext(ctx, query, p.Title, p.Difficulty, p.Platform, p.URL, p.ID)
	}
	if err != nil {
		return fmt.Errorf("pgProblemRepository.Update: %w", err)
	}
	return nil
}

func (r *pgProblemRepository) FindByID(ctx context.Context, id string) (*model.Problem, error) {
	return r.findBy(ctx, "p.id", id)
}

func (r *pgProblemRepository) FindByKey(ctx context.Context, problemKey string) (*model.Problem, error) {
	return r.findBy(ctx, "p.problem_key", problemKey)
}

func (r *pgProblemRepository) findBy(ctx context.Context, field, value string) (*model.Problem, error) {
	query := problemSelect + ` WHERE ` + field + ` = $1 GROUP BY p.id`
	p := &model.Problem{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&p.ID, &p.ProblemKey, &p.Title, &p.Difficulty, &p.Platform, &p.URL,
		pq.Array(&p.Tags), &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProblemRepository.findBy %s: %w", field, err)
	}
	return p, nil
}

func (r *pgProblemRepository) List(ctx context.Context, filter ProblemFilter) ([]model.Problem, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if len(filter.Tags) > 0 {
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM problem_tags fpt JOIN tags ft ON ft.id = fpt.tag_id
			         WHERE fpt.problem_id = p.id AND ft.name = ANY($%d))`, argID))
		args = append(args, pq.Array(filter.Tags))
		argID++
	}
	if filter.Difficulty != "" {
		conditions = append(conditions, fmt.Sprintf("p.difficulty = $%d", argID))
		args = append(args, filter.Difficulty)
		argID++
	}
	if filter.Platform != "" {
		conditions = append(conditions, fmt.Sprintf("p.platform = $%d", argID))
		args = append(args, filter.Platform)
		argID++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("p.title ILIKE $%d", argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM problems p` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgProblemRepository.List count: %w", err)
	}

	query := problemSelect + whereClause +
		fmt.Sprintf(" GROUP BY p.id ORDER BY p.created_at DESC, p.id LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	problems, err := r.queryProblems(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgProblemRepository.List: %w", err)
	}
	return problems, total, nil
}

func (r *pgProblemRepository) ListNewest(ctx context.Context, limit int) ([]model.Problem, error) {
	query := problemSelect + ` GROUP BY p.id ORDER BY p.created_at DESC, p.id LIMIT $1`
	problems, err := r.queryProblems(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListNewest: %w", err)
	}
	return problems, nil
}

// ListUnsolvedByTags returns problems carrying at least one of the given
// tags that the user has not yet solved, in catalog insertion order.
func (r *pgProblemRepository) ListUnsolvedByTags(ctx context.Context, userID string, tags []string, limit int) ([]model.Problem, error) {
	query := problemSelect + `
	WHERE EXISTS (SELECT 1 FROM problem_tags fpt JOIN tags ft ON ft.id = fpt.tag_id
	              WHERE fpt.problem_id = p.id AND ft.name = ANY($1))
	  AND NOT EXISTS (SELECT 1 FROM solved_problems s
	                  WHERE s.problem_id = p.id AND s.user_id = $2)
	GROUP BY p.id
	ORDER BY p.created_at ASC, p.id
	LIMIT $3`
	problems, err := r.queryProblems(ctx, query, pq.Array(tags), userID, limit)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListUnsolvedByTags: %w", err)
	}
	return problems, nil
}

func (r *pgProblemRepository) queryProblems(ctx context.Context, query string, args ...interface{}) ([]model.Problem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		var p model.Problem
		if err := rows.Scan(
			&p.ID, &p.ProblemKey, &p.Title, &p.Difficulty, &p.Platform, &p.URL,
			pq.Array(&p.Tags), &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	return problems, rows.Err()
}

// FindOrCreateTags resolves tag names to ids, creating missing tags inside
// the caller's transaction. The insert is ON CONFLICT DO NOTHING so a
// concurrent create of the same name never errors the transaction into an
// aborted state; the follow-up read sees whichever row won.
func (r *pgProblemRepository) FindOrCreateTags(ctx context.Context, tx *sql.Tx, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	tagIDs := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tags (id, name, slug) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`,
			uuid.NewString(), name, slug.Make(name))
		if err != nil {
			return nil, fmt.Errorf("pgProblemRepository.FindOrCreateTags insert %q: %w", name, err)
		}
		var id string
		if err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = $1`, name).Scan(&id); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.FindOrCreateTags read %q: %w", name, err)
		}
		tagIDs = append(tagIDs, id)
	}
	return tagIDs, nil
}

func (r *pgProblemRepository) ReplaceProblemTags(ctx context.Context, tx *sql.Tx, problemID string, tagIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM problem_tags WHERE problem_id = $1`, problemID); err != nil {
		return fmt.Errorf("pgProblemRepository.ReplaceProblemTags clear: %w", err)
	}
	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO problem_tags (problem_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			problemID, tagID)
		if err != nil {
			return fmt.Errorf("pgProblemRepository.ReplaceProblemTags insert: %w", err)
		}
	}
	return nil
}
