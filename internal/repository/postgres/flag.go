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

type flagRepository struct {
	db *sql.DB
}

func NewFlagRepository(db *sql.DB) repository.FlagRepository {
	return &flagRepository{db: db}
}

const flagColumns = `f.id, f.target_kind, f.target_id, f.target_owner_id, f.reporter_id, f.track,
       f.subject, f.body, f.body_html, COALESCE(f.resolution, ''), f.created_at, f.resolved_at,
       COALESCE(array_agg(fp.user_id) FILTER (WHERE fp.user_id IS NOT NULL), '{}') AS participants`

func (r *flagRepository) Create(ctx context.Context, f *domain.Flag) error {
	f.CreatedAt = time.Now()
	query := `INSERT INTO flags (target_kind, target_id, target_owner_id, reporter_id, track, subject, body, body_html, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, f.Target.Kind, f.Target.ID, f.TargetOwnerID, f.ReporterID, f.Track, f.Subject, f.Body, f.BodyHTML, f.CreatedAt).Scan(&f.ID)
	if err != nil {
		return err
	}
	// The reporter is always an implicit participant.
	if err := r.AddParticipant(ctx, f.ID, f.ReporterID); err != nil {
		return err
	}
	f.ParticipantIDs = []int32{f.ReporterID}
	return nil
}

func (r *flagRepository) GetByID(ctx context.Context, id int32) (*domain.Flag, error) {
	f := &domain.Flag{}
	query := `SELECT ` + flagColumns + `
	          FROM flags f LEFT JOIN flag_participants fp ON fp.flag_id = f.id
	          WHERE f.id = $1
	          GROUP BY f.id`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.Target.Kind, &f.Target.ID, &f.TargetOwnerID, &f.ReporterID, &f.Track,
		&f.Subject, &f.Body, &f.BodyHTML, &f.Resolution, &f.CreatedAt, &f.ResolvedAt,
		pq.Array(&f.ParticipantIDs))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *flagRepository) AddParticipant(ctx context.Context, flagID, userID int32) error {
	query := `INSERT INTO flag_participants (flag_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, flagID, userID)
	return err
}

func (r *flagRepository) Resolve(ctx context.Context, flagID int32, resolution string, resolvedAt time.Time) error {
	query := `UPDATE flags SET resolution=$1, resolved_at=$2 WHERE id=$3 AND resolved_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, resolution, resolvedAt, flagID)
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

func (r *flagRepository) List(ctx context.Context, filter repository.FlagFilter) ([]domain.Flag, int32, error) {
	where := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Track != nil {
		where += fmt.Sprintf(" AND f.track = $%d", argIdx)
		args = append(args, *filter.Track)
		argIdx++
	}
	if filter.ActiveOnly {
		where += " AND f.resolved_at IS NULL"
	}
	if filter.ParticipantID != nil {
		where += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM flag_participants p WHERE p.flag_id = f.id AND p.user_id = $%d)", argIdx)
		args = append(args, *filter.ParticipantID)
		argIdx++
	}

	var count int32
	countSQL := "SELECT count(*) FROM flags f WHERE " + where
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}
	query := `SELECT ` + flagColumns + `
	          FROM flags f LEFT JOIN flag_participants fp ON fp.flag_id = f.id
	          WHERE ` + where + `
	          GROUP BY f.id` +
		fmt.Sprintf(" ORDER BY f.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (int64(page)-1)*int64(pageSize))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var flags []domain.Flag
	for rows.Next() {
		var f domain.Flag
		if err := rows.Scan(
			&f.ID, &f.Target.Kind, &f.Target.ID, &f.TargetOwnerID, &f.ReporterID, &f.Track,
			&f.Subject, &f.Body, &f.BodyHTML, &f.Resolution, &f.CreatedAt, &f.ResolvedAt,
			pq.Array(&f.ParticipantIDs)); err != nil {
			return nil, 0, err
		}
		flags = append(flags, f)
	}
	return flags, count, rows.Err()
}
