package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/repository"

	"github.com/lib/pq"
)

type banRepository struct {
	db *sql.DB
}

func NewBanRepository(db *sql.DB) repository.BanRepository {
	return &banRepository{db: db}
}

const banColumns = `b.id, b.admin_id, b.target_user_id, b.track, b.reason, b.starts_at, b.ends_at, b.status,
       COALESCE(array_agg(bf.flag_id) FILTER (WHERE bf.flag_id IS NOT NULL), '{}') AS flag_ids,
       b.created_at, b.updated_at`

func (r *banRepository) Create(ctx context.Context, b *domain.Ban) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	b.Status = domain.BanStatusActive
	query := `INSERT INTO bans (admin_id, target_user_id, track, reason, starts_at, ends_at, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, b.AdminID, b.TargetUserID, b.Track, b.Reason, b.StartsAt, b.EndsAt, b.Status, now, now).Scan(&b.ID)
	if err != nil {
		return err
	}
	for _, flagID := range b.FlagIDs {
		if _, err := r.db.ExecContext(ctx, `INSERT INTO ban_flags (ban_id, flag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, b.ID, flagID); err != nil {
			return err
		}
	}
	return nil
}

func (r *banRepository) GetByID(ctx context.Context, id int32) (*domain.Ban, error) {
	b := &domain.Ban{}
	query := `SELECT ` + banColumns + `
	          FROM bans b LEFT JOIN ban_flags bf ON bf.ban_id = b.id
	          WHERE b.id = $1
	          GROUP BY b.id`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.AdminID, &b.TargetUserID, &b.Track, &b.Reason, &b.StartsAt, &b.EndsAt, &b.Status,
		pq.Array(&b.FlagIDs), &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *banRepository) Lift(ctx context.Context, id int32) error {
	query := `UPDATE bans SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4`
	result, err := r.db.ExecContext(ctx, query, domain.BanStatusLifted, time.Now(), id, domain.BanStatusActive)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAlreadyResolved
	}
	return nil
}

func (r *banRepository) List(ctx context.Context, activeOnly bool, page, pageSize int32) ([]domain.Ban, int32, error) {
	where := "1=1"
	args := []interface{}{}
	if activeOnly {
		where = "b.status = $1"
		args = append(args, domain.BanStatusActive)
	}

	var count int32
	countSQL := "SELECT count(*) FROM bans b WHERE " + where
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}
	argIdx := len(args) + 1
	query := `SELECT ` + banColumns + `
	          FROM bans b LEFT JOIN ban_flags bf ON bf.ban_id = b.id
	          WHERE ` + where + `
	          GROUP BY b.id` +
		fmt.Sprintf(" ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (int64(page)-1)*int64(pageSize))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bans []domain.Ban
	for rows.Next() {
		var b domain.Ban
		if err := rows.Scan(
			&b.ID, &b.AdminID, &b.TargetUserID, &b.Track, &b.Reason, &b.StartsAt, &b.EndsAt, &b.Status,
			pq.Array(&b.FlagIDs), &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		bans = append(bans, b)
	}
	return bans, count, rows.Err()
}

func (r *banRepository) HasActiveBan(ctx context.Context, userID int32, now time.Time) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM bans WHERE target_user_id = $1 AND status = $2 AND ends_at > $3)`
	err := r.db.QueryRowContext(ctx, query, userID, domain.BanStatusActive, now).Scan(&exists)
	return exists, err
}

func (r *banRepository) ExpireDue(ctx context.Context, now time.Time) ([]domain.Ban, error) {
	query := `UPDATE bans SET status=$1, updated_at=$2 WHERE status=$3 AND ends_at <= $2
	          RETURNING id, admin_id, target_user_id, track, reason, starts_at, ends_at, status, created_at, updated_at`
	rows, err := r.db.QueryContext(ctx, query, domain.BanStatusExpired, now, domain.BanStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expired []domain.Ban
	for rows.Next() {
		var b domain.Ban
		if err := rows.Scan(&b.ID, &b.AdminID, &b.TargetUserID, &b.Track, &b.Reason, &b.StartsAt, &b.EndsAt, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		expired = append(expired, b)
	}
	return expired, rows.Err()
}
