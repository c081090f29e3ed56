package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/repository/postgres"
)

func TestBanRepository_Lift(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBanRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE bans SET status").
			WithArgs(domain.BanStatusLifted, sqlmock.AnyArg(), int32(2), domain.BanStatusActive).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Lift(ctx, 2))
	})

	t.Run("NotActive", func(t *testing.T) {
		mock.ExpectExec("UPDATE bans SET status").
			WithArgs(domain.BanStatusLifted, sqlmock.AnyArg(), int32(2), domain.BanStatusActive).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Lift(ctx, 2), domain.ErrAlreadyResolved)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBanRepository_HasActiveBan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBanRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int32(5), domain.BanStatusActive, now).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	active, err := repo.HasActiveBan(ctx, 5, now)
	assert.NoError(t, err)
	assert.True(t, active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBanRepository_ExpireDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBanRepository(db)
	ctx := context.Background()
	now := time.Now()

	columns := []string{"id", "admin_id", "target_user_id", "track", "reason", "starts_at", "ends_at", "status", "created_at", "updated_at"}
	rows := sqlmock.NewRows(columns).
		AddRow(2, 1, 5, "social", "spam", now.AddDate(0, 0, -8), now.AddDate(0, 0, -1), "expired", now, now)

	mock.ExpectQuery("UPDATE bans SET status").
		WithArgs(domain.BanStatusExpired, now, domain.BanStatusActive).
		WillReturnRows(rows)

	expired, err := repo.ExpireDue(ctx, now)
	assert.NoError(t, err)
	assert.Len(t, expired, 1)
	assert.Equal(t, int32(5), expired[0].TargetUserID)
	assert.Equal(t, domain.BanStatusExpired, expired[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
