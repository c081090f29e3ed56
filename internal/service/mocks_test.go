package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockFlagRepo
type MockFlagRepo struct {
	mock.Mock
}

func (m *MockFlagRepo) Create(ctx context.Context, flag *domain.Flag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}
func (m *MockFlagRepo) GetByID(ctx context.Context, id int32) (*domain.Flag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flag), args.Error(1)
}
func (m *MockFlagRepo) AddParticipant(ctx context.Context, flagID, userID int32) error {
	args := m.Called(ctx, flagID, userID)
	return args.Error(0)
}
func (m *MockFlagRepo) Resolve(ctx context.Context, flagID int32, resolution string, resolvedAt time.Time) error {
	args := m.Called(ctx, flagID, resolution, resolvedAt)
	return args.Error(0)
}
func (m *MockFlagRepo) List(ctx context.Context, filter repository.FlagFilter) ([]domain.Flag, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Flag), args.Get(1).(int32), args.Error(2)
}

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Claim(ctx context.Context, id, assigneeID int32) (bool, error) {
	args := m.Called(ctx, id, assigneeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) Resolve(ctx context.Context, id int32, resolution domain.ApplicationResolution, resolvedAt time.Time) error {
	args := m.Called(ctx, id, resolution, resolvedAt)
	return args.Error(0)
}
func (m *MockApplicationRepo) List(ctx context.Context, filter repository.ApplicationFilter) ([]domain.Application, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Application), args.Get(1).(int32), args.Error(2)
}

// MockBanRepo
type MockBanRepo struct {
	mock.Mock
}

func (m *MockBanRepo) Create(ctx context.Context, ban *domain.Ban) error {
	args := m.Called(ctx, ban)
	return args.Error(0)
}
func (m *MockBanRepo) GetByID(ctx context.Context, id int32) (*domain.Ban, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ban), args.Error(1)
}
func (m *MockBanRepo) Lift(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBanRepo) List(ctx context.Context, activeOnly bool, page, pageSize int32) ([]domain.Ban, int32, error) {
	args := m.Called(ctx, activeOnly, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Ban), args.Get(1).(int32), args.Error(2)
}
func (m *MockBanRepo) HasActiveBan(ctx context.Context, userID int32, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, now)
	return args.Bool(0), args.Error(1)
}
func (m *MockBanRepo) ExpireDue(ctx context.Context, now time.Time) ([]domain.Ban, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ban), args.Error(1)
}

// MockActivityRepo
type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Create(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}
func (m *MockActivityRepo) List(ctx context.Context, filter repository.ActivityFilter) ([]domain.Activity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}
func (m *MockActivityRepo) SiteStats(ctx context.Context) (*domain.SiteStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SiteStats), args.Error(1)
}
func (m *MockActivityRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit int32, offset int64) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockEntityRepo
type MockEntityRepo struct {
	mock.Mock
}

func (m *MockEntityRepo) ResolveOwner(ctx context.Context, ref domain.EntityRef) (int32, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(int32), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendFlagJoinedNotification(ctx context.Context, email, name, subject string) error {
	args := m.Called(ctx, email, name, subject)
	return args.Error(0)
}
func (m *MockEmailService) SendFlagResolvedNotification(ctx context.Context, email, name, subject, resolution string) error {
	args := m.Called(ctx, email, name, subject, resolution)
	return args.Error(0)
}
func (m *MockEmailService) SendApplicationClaimedNotification(ctx context.Context, email, name string, appType domain.ApplicationType) error {
	args := m.Called(ctx, email, name, appType)
	return args.Error(0)
}
func (m *MockEmailService) SendApplicationResolvedNotification(ctx context.Context, email, name string, appType domain.ApplicationType, resolution domain.ApplicationResolution) error {
	args := m.Called(ctx, email, name, appType, resolution)
	return args.Error(0)
}
func (m *MockEmailService) SendBanNotification(ctx context.Context, email, name, reason string, lifted bool) error {
	args := m.Called(ctx, email, name, reason, lifted)
	return args.Error(0)
}

// MockActivityService
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Record(ctx context.Context, domainName, action string, actorID *int32, entity *domain.EntityRef) {
	m.Called(ctx, domainName, action, actorID, entity)
}
func (m *MockActivityService) Stream(ctx context.Context, filter repository.ActivityFilter) ([]domain.Activity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}
func (m *MockActivityService) SiteStats(ctx context.Context) (*domain.SiteStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SiteStats), args.Error(1)
}
