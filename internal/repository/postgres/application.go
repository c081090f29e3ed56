package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/repository"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, type, track, applicant_id, assignee_id, body, body_html, resolution, created_at, resolved_at`

func (r *applicationRepository) Create(ctx context.Context, a *domain.Application) error {
	a.CreatedAt = time.Now()
	query := `INSERT INTO applications (type, track, applicant_id, body, body_html, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, a.Type, a.Track, a.ApplicantID, a.Body, a.BodyHTML, a.CreatedAt).Scan(&a.ID)
}

func (r *applicationRepository) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	a := &domain.Application{}
	var resolution sql.NullString
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Type, &a.Track, &a.ApplicantID, &a.AssigneeID, &a.Body, &a.BodyHTML, &resolution, &a.CreatedAt, &a.ResolvedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if resolution.Valid {
		a.Resolution = domain.ApplicationResolution(resolution.String)
	}
	return a, nil
}

// Claim is the single write that makes first-claim-wins safe under
// concurrent requests: the row only updates while assignee_id is NULL, so
// of two racing moderators exactly one sees a row change.
func (r *applicationRepository) Claim(ctx context.Context, id, assigneeID int32) (bool, error) {
	query := `UPDATE applications SET assignee_id = $1 WHERE id = $2 AND assignee_id IS NULL`
	result, err := r.db.ExecContext(ctx, query, assigneeID, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *applicationRepository) Resolve(ctx context.Context, id int32, resolution domain.ApplicationResolution, resolvedAt time.Time) error {
	query := `UPDATE applications SET resolution=$1, resolved_at=$2 WHERE id=$3 AND resolved_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, resolution, resolvedAt, id)
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

func (r *applicationRepository) List(ctx context.Context, filter repository.ApplicationFilter) ([]domain.Application, int32, error) {
	where := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Track != nil {
		where += fmt.Sprintf(" AND track = $%d", argIdx)
		args = append(args, *filter.Track)
		argIdx++
	}
	if filter.UnresolvedOnly {
		where += " AND resolved_at IS NULL"
	}
	if filter.PartyID != nil {
		where += fmt.Sprintf(" AND (applicant_id = $%d OR assignee_id = $%d)", argIdx, argIdx)
		args = append(args, *filter.PartyID)
		argIdx++
	}

	var count int32
	countSQL := "SELECT count(*) FROM applications WHERE " + where
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
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE ` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (int64(page)-1)*int64(pageSize))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		var resolution sql.NullString
		if err := rows.Scan(&a.ID, &a.Type, &a.Track, &a.ApplicantID, &a.AssigneeID, &a.Body, &a.BodyHTML, &resolution, &a.CreatedAt, &a.ResolvedAt); err != nil {
			return nil, 0, err
		}
		if resolution.Valid {
			a.Resolution = domain.ApplicationResolution(resolution.String)
		}
		apps = append(apps, a)
	}
	return apps, count, rows.Err()
}
