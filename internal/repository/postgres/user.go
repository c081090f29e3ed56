package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/repository"

	"github.com/lib/pq"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, display_name, superuser, permissions, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	return r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.DisplayName, u.Superuser, pq.Array(u.Permissions), now, now).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, display_name, superuser, permissions, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Superuser, pq.Array(&u.Permissions), &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, display_name, superuser, permissions, created_at, updated_at FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Superuser, pq.Array(&u.Permissions), &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, display_name=$2, superuser=$3, permissions=$4, updated_at=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, u.Email, u.DisplayName, u.Superuser, pq.Array(u.Permissions), time.Now(), u.ID)
	return err
}
