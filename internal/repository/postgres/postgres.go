package postgres

import (
	"database/sql"

	"honeycomb-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.FlagRepository
	repository.ApplicationRepository
	repository.BanRepository
	repository.ActivityRepository
	repository.NotificationRepository
	repository.EntityRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		FlagRepository:         NewFlagRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		BanRepository:          NewBanRepository(db),
		ActivityRepository:     NewActivityRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		EntityRepository:       NewEntityRepository(db),
	}
}
