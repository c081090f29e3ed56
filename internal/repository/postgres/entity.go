package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/repository"
)

type entityRepository struct {
	db *sql.DB
}

func NewEntityRepository(db *sql.DB) repository.EntityRepository {
	return &entityRepository{db: db}
}

// ownerQueries maps each flaggable kind to the query that returns the owner
// of a row of that kind. A profile's owner is the profile user itself.
var ownerQueries = map[domain.EntityKind]string{
	domain.EntitySubmission: `SELECT owner_id FROM submissions WHERE id = $1`,
	domain.EntityComment:    `SELECT author_id FROM comments WHERE id = $1`,
	domain.EntityFolder:     `SELECT owner_id FROM folders WHERE id = $1`,
	domain.EntityPublisher:  `SELECT owner_id FROM publishers WHERE id = $1`,
	domain.EntityProfile:    `SELECT id FROM users WHERE id = $1`,
	domain.EntityEvent:      `SELECT owner_id FROM events WHERE id = $1`,
	domain.EntityAd:         `SELECT owner_id FROM ads WHERE id = $1`,
}

func (r *entityRepository) ResolveOwner(ctx context.Context, ref domain.EntityRef) (int32, error) {
	query, ok := ownerQueries[ref.Kind]
	if !ok {
		return 0, domain.NewValidationError("entity_kind", fmt.Sprintf("%q is not a flaggable kind", ref.Kind))
	}
	var ownerID int32
	err := r.db.QueryRowContext(ctx, query, ref.ID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return ownerID, nil
}
