package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"codetrack/internal/domain/model"
)

// ProgressRepository holds the grouped-count queries behind the summary,
// timeline and recommendation computations. All grouping keys come from the
// joined problem row, never from the solved record itself.
type ProgressRepository interface {
	CountSolved(ctx context.Context, userID string) (int, error)
	CountByDifficulty(ctx context.Context, userID string) ([]model.BucketCount, error)
	CountByTag(ctx context.Context, userID string, limit int) ([]model.BucketCount, error)
	TimelineCounts(ctx context.Context, userID string, since time.Time) ([]model.DayCount, error)
}

type pgProgressRepository struct {
	db *sql.DB
}

func NewPgProgressRepository(db *sql.DB) ProgressRepository {
	return &pgProgressRepository{db: db}
}

func (r *pgProgressRepository) CountSolved(ctx context.Context, userID string) (int, error) {
	var total int
	query := `SELECT COUNT(*) FROM solved_problems WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("pgProgressRepository.CountSolved: %w", err)
	}
	return total, nil
}

func (r *pgProgressRepository) CountByDifficulty(ctx context.Context, userID string) ([]model.BucketCount, error) {
	query := `
	SELECT p.difficulty, COUNT(*)
	FROM solved_problems s
	JOIN problems p ON p.id = s.problem_id
	WHERE s.user_id = $1
	GROUP BY p.difficulty
	ORDER BY COUNT(*) DESC, p.difficulty ASC`
	return r.queryBuckets(ctx, "CountByDifficulty", query, userID)
}

// CountByTag counts solves per tag; a solve of a problem with N tags lands
// in N buckets. Ties are broken by tag name so the order is deterministic.
func (r *pgProgressRepository) CountByTag(ctx context.Context, userID string, limit int) ([]model.BucketCount, error) {
	query := `
	SELECT t.name, COUNT(*)
	FROM solved_problems s
	JOIN problem_tags pt ON pt.problem_id = s.problem_id
	JOIN tags t ON t.id = pt.tag_id
	WHERE s.user_id = $1
	GROUP BY t.name
	ORDER BY COUNT(*) DESC, t.name ASC
	LIMIT $2`
	return r.queryBuckets(ctx, "CountByTag", query, userID, limit)
}

func (r *pgProgressRepository) queryBuckets(ctx context.Context, op, query string, args ...interface{}) ([]model.BucketCount, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.%s: %w", op, err)
	}
	defer rows.Close()

	buckets := []model.BucketCount{}
	for rows.Next() {
		var b model.BucketCount
		if err := rows.Scan(&b.Key, &b.Count); err != nil {
			return nil, fmt.Errorf("pgProgressRepository.%s scan: %w", op, err)
		}
		buckets = append(buckets, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProgressRepository.%s rows.Err: %w", op, err)
	}
	return buckets, nil
}

// TimelineCounts buckets the user's solves by UTC calendar day, ascending.
// Days with no solves produce no row.
func (r *pgProgressRepository) TimelineCounts(ctx context.Context, userID string, since time.Time) ([]model.DayCount, error) {
	query := `
	SELECT EXTRACT(YEAR FROM s.solved_at AT TIME ZONE 'UTC')::int,
	       EXTRACT(MONTH FROM s.solved_at AT TIME ZONE 'UTC')::int,
	       EXTRACT(DAY FROM s.solved_at AT TIME ZONE 'UTC')::int,
	       COUNT(*)
	FROM solved_problems s
	WHERE s.user_id = $1 AND s.solved_at >= $2
	GROUP BY 1, 2, 3
	ORDER BY 1, 2, 3`
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.TimelineCounts: %w", err)
	}
	defer rows.Close()

	days := []model.DayCount{}
	for rows.Next() {
		var d model.DayCount
		if err := rows.Scan(&d.Year, &d.Month, &d.Day, &d.Count); err != nil {
			return nil, fmt.Errorf("pgProgressRepository.TimelineCounts scan: %w", err)
		}
		days = append(days, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProgressRepository.TimelineCounts rows.Err: %w", err)
	}
	return days, nil
}
