package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/repository"
)

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, a *domain.Activity) error {
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now()
	}
	query := `INSERT INTO activities (type, actor_id, entity_kind, entity_id, occurred_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, a.Type, a.ActorID, a.EntityKind, a.EntityID, a.OccurredAt).Scan(&a.ID)
}

func (r *activityRepository) List(ctx context.Context, filter repository.ActivityFilter) ([]domain.Activity, error) {
	where := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EntityKind != nil {
		where += fmt.Sprintf(" AND entity_kind = $%d", argIdx)
		args = append(args, *filter.EntityKind)
		argIdx++
	}
	if filter.EntityID != nil {
		where += fmt.Sprintf(" AND entity_id = $%d", argIdx)
		args = append(args, *filter.EntityID)
		argIdx++
	}
	if filter.Type != nil {
		where += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	query := `SELECT id, type, actor_id, entity_kind, entity_id, occurred_at FROM activities WHERE ` + where +
		fmt.Sprintf(" ORDER BY occurred_at DESC, id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (int64(page)-1)*int64(pageSize))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.ActorID, &a.EntityKind, &a.EntityID, &a.OccurredAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (r *activityRepository) SiteStats(ctx context.Context) (*domain.SiteStats, error) {
	stats := &domain.SiteStats{}
	query := `SELECT
	    (SELECT count(*) FROM users),
	    (SELECT count(*) FROM submissions),
	    (SELECT count(*) FROM comments),
	    (SELECT count(*) FROM ratings),
	    (SELECT count(*) FROM tags),
	    (SELECT count(*) FROM publishers),
	    (SELECT count(*) FROM flags),
	    (SELECT count(*) FROM applications)`
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Users, &stats.Submissions, &stats.Comments, &stats.Ratings,
		&stats.Tags, &stats.Publishers, &stats.Flags, &stats.Applications)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *activityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE occurred_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
