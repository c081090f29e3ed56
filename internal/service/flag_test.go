package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/markdown"
	"honeycomb-backend/internal/repository"
	"honeycomb-backend/internal/service"
)

func newFlagService(flagRepo *MockFlagRepo, entityRepo *MockEntityRepo, userRepo *MockUserRepo, noteRepo *MockNotificationRepo, emailSvc *MockEmailService, activity *MockActivityService) service.FlagService {
	return service.NewFlagService(flagRepo, entityRepo, userRepo, noteRepo, emailSvc, activity, markdown.NewRenderer())
}

func TestFlagService_CreateFlag(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		flagRepo := new(MockFlagRepo)
		entityRepo := new(MockEntityRepo)
		activity := new(MockActivityService)
		svc := newFlagService(flagRepo, entityRepo, new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService), activity)

		target := domain.EntityRef{Kind: domain.EntitySubmission, ID: 42}
		entityRepo.On("ResolveOwner", ctx, target).Return(int32(7), nil).Once()
		flagRepo.On("Create", ctx, mock.MatchedBy(func(f *domain.Flag) bool {
			return f.ReporterID == 3 && f.TargetOwnerID == 7 && f.Track == domain.TrackContent && f.BodyHTML != ""
		})).Return(nil).Once()
		activity.On("Record", ctx, "flag", "create", mock.Anything, mock.Anything).Once()

		flag, err := svc.CreateFlag(ctx, 3, target, domain.TrackContent, "Spam link", "This submission is **spam**.")
		assert.NoError(t, err)
		assert.Equal(t, int32(7), flag.TargetOwnerID)
		flagRepo.AssertExpectations(t)
		activity.AssertExpectations(t)
	})

	t.Run("SelfFlagDenied", func(t *testing.T) {
		entityRepo := new(MockEntityRepo)
		svc := newFlagService(new(MockFlagRepo), entityRepo, new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService), new(MockActivityService))

		target := domain.EntityRef{Kind: domain.EntitySubmission, ID: 42}
		entityRepo.On("ResolveOwner", ctx, target).Return(int32(3), nil).Once()

		_, err := svc.CreateFlag(ctx, 3, target, domain.TrackContent, "Spam", "body")
		assert.True(t, domain.IsAuthorization(err))
	})

	t.Run("MissingTarget", func(t *testing.T) {
		entityRepo := new(MockEntityRepo)
		svc := newFlagService(new(MockFlagRepo), entityRepo, new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService), new(MockActivityService))

		target := domain.EntityRef{Kind: domain.EntityComment, ID: 404}
		entityRepo.On("ResolveOwner", ctx, target).Return(int32(0), domain.ErrNotFound).Once()

		_, err := svc.CreateFlag(ctx, 3, target, domain.TrackSocial, "Abuse", "body")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("UnknownKindForbidden", func(t *testing.T) {
		entityRepo := new(MockEntityRepo)
		svc := newFlagService(new(MockFlagRepo), entityRepo, new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService), new(MockActivityService))

		target := domain.EntityRef{Kind: domain.EntityKind("widget"), ID: 42}
		_, err := svc.CreateFlag(ctx, 3, target, domain.TrackContent, "Spam", "body")
		assert.True(t, domain.IsAuthorization(err))
		entityRepo.AssertNotCalled(t, "ResolveOwner", mock.Anything, mock.Anything)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		svc := newFlagService(new(MockFlagRepo), new(MockEntityRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService), new(MockActivityService))

		target := domain.EntityRef{Kind: domain.EntitySubmission, ID: 42}
		_, err := svc.CreateFlag(ctx, 3, target, domain.TrackContent, "  ", "body")
		assert.True(t, domain.IsValidation(err))
	})
}

func TestFlagService_JoinFlag(t *testing.T) {
	ctx := context.Background()
	moderator := &domain.User{ID: 10, Email: "mod@test.com", DisplayName: "Mod", Permissions: []string{"resolve_social_flags"}}

	t.Run("Success", func(t *testing.T) {
		flagRepo := new(MockFlagRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		activity := new(MockActivityService)
		svc := newFlagService(flagRepo, new(MockEntityRepo), userRepo, noteRepo, emailSvc, activity)

		flag := &domain.Flag{ID: 1, Track: domain.TrackSocial, Subject: "Abuse", ReporterID: 3, ParticipantIDs: []int32{3}}
		userRepo.On("GetByID", ctx, int32(10)).Return(moderator, nil).Once()
		flagRepo.On("GetByID", ctx, int32(1)).Return(flag, nil).Once()
		flagRepo.On("AddParticipant", ctx, int32(1), int32(10)).Return(nil).Once()
		userRepo.On("GetByID", ctx, int32(3)).Return(&domain.User{ID: 3, Email: "rep@test.com", DisplayName: "Reporter"}, nil).Once()
		emailSvc.On("SendFlagJoinedNotification", ctx, "rep@test.com", "Reporter", "Abuse").Return(nil).Once()
		noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 3 && n.Attributes["type"] == "FLAG_JOINED"
		})).Return(nil).Once()
		activity.On("Record", ctx, "flag", "join", mock.Anything, mock.Anything).Once()

		got, joined, err := svc.JoinFlag(ctx, 10, 1)
		assert.NoError(t, err)
		assert.True(t, joined)
		assert.Contains(t, got.ParticipantIDs, int32(10))
		flagRepo.AssertExpectations(t)
		noteRepo.AssertExpectations(t)
	})

	t.Run("AlreadyParticipantWarns", func(t *testing.T) {
		flagRepo := new(MockFlagRepo)
		userRepo := new(MockUserRepo)
		svc := newFlagService(flagRepo, new(MockEntityRepo), userRepo, new(MockNotificationRepo), new(MockEmailService), new(MockActivityService))

		flag := &domain.Flag{ID: 1, Track: domain.TrackSocial, ParticipantIDs: []int32{3, 10}}
		userRepo.On("GetByID", ctx, int32(10)).Return(moderator, nil).Once()
		flagRepo.On("GetByID", ctx, int32(1)).Return(flag, nil).Once()

		got, joined, err := svc.JoinFlag(ctx, 10, 1)
		assert.NoError(t, err)
		assert.False(t, joined)
		assert.Equal(t, flag, got)
	})

	t.Run("ResolvedFlagRejected", func(t *testing.T) {
		flagRepo := new(MockFlagRepo)
		userRepo := new(MockUserRepo)
		svc := newFlagService(flagRepo, new(MockEntityRepo), userRepo, new(MockNotificationRepo), new(MockEmailService), new(MockActivityService))

		now := time.Now()
		flag := &domain.Flag{ID: 1, Track: domain.TrackSocial, ResolvedAt: &now, ParticipantIDs: []int32{3}}
		userRepo.On("GetByID", ctx, int32(10)).Return(moderator, nil).Once()
		flagRepo.On("GetByID", ctx, int32(1)).Return(flag, nil).Once()

		_, _, err := svc.JoinFlag(ctx, 10, 1)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("WithoutResolvePermission", func(t *testing.T) {
		flagRepo := new(MockFlagRepo)
		userRepo := new(MockUserRepo)
		svc := newFlagService(flagRepo, new(MockEntityRepo), userRepo, new(MockNotificationRepo), new(MockEmailService), new(MockActivityService))

		flag := &domain.Flag{ID: 1, Track: domain.TrackContent, ParticipantIDs: []int32{3}}
		userRepo.On("GetByID", ctx, int32(10)).Return(moderator, nil).Once()
		flagRepo.On("GetByID", ctx, int32(1)).Return(flag, nil).Once()

		_, _, err := svc.JoinFlag(ctx, 10, 1)
		assert.True(t, domain.IsAuthorization(err))
	})
}

func TestFlagService_ResolveFlag(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		flagRepo := new(MockFlagRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		activity := new(MockActivityService)
		svc := newFlagService(flagRepo, new(MockEntityRepo), userRepo, noteRepo, emailSvc, activity)

		flag := &domain.Flag{ID: 1, Track: domain.TrackSocial, Subject: "Abuse", ReporterID: 3, ParticipantIDs: []int32{3, 10}}
		flagRepo.On("GetByID", ctx, int32(1)).Return(flag, nil).Once()
		flagRepo.On("Resolve", ctx, int32(1), "removed the comment", mock.AnythingOfType("time.Time")).Return(nil).Once()
		userRepo.On("GetByID", ctx, int32(3)).Return(&domain.User{ID: 3, Email: "rep@test.com", DisplayName: "Reporter"}, nil).Once()
		emailSvc.On("SendFlagResolvedNotification", ctx, "rep@test.com", "Reporter", "Abuse", "removed the comment").Return(nil).Once()
		noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 3 && n.Attributes["type"] == "FLAG_RESOLVED"
		})).Return(nil).Once()
		activity.On("Record", ctx, "flag", "resolve", mock.Anything, mock.Anything).Once()

		got, err := svc.ResolveFlag(ctx, 10, 1, "removed the comment")
		assert.NoError(t, err)
		assert.NotNil(t, got.ResolvedAt)
		assert.Equal(t, "removed the comment", got.Resolution)
		flagRepo.AssertExpectations(t)
	})

	t.Run("NonParticipantRejected", func(t *testing.T) {
		flagRepo := new(MockFlagRepo)
		svc := newFlagService(flagRepo, new(MockEntityRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService), new(MockActivityService))

		flag := &domain.Flag{ID: 1, Track: domain.TrackSocial, ParticipantIDs: []int32{3}}
		flagRepo.On("GetByID", ctx, int32(1)).Return(flag, nil).Once()

		_, err := svc.ResolveFlag(ctx, 10, 1, "done")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("SecondResolveConflicts", func(t *testing.T) {
		flagRepo := new(MockFlagRepo)
		svc := newFlagService(flagRepo, new(MockEntityRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService), new(MockActivityService))

		flag := &domain.Flag{ID: 1, Track: domain.TrackSocial, ParticipantIDs: []int32{10}}
		flagRepo.On("GetByID", ctx, int32(1)).Return(flag, nil).Once()
		flagRepo.On("Resolve", ctx, int32(1), "done", mock.AnythingOfType("time.Time")).Return(domain.ErrAlreadyResolved).Once()

		_, err := svc.ResolveFlag(ctx, 10, 1, "done")
		assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
	})
}

func TestFlagService_ListFlags(t *testing.T) {
	ctx := context.Background()

	t.Run("NarrowsToPermittedTrack", func(t *testing.T) {
		flagRepo := new(MockFlagRepo)
		userRepo := new(MockUserRepo)
		svc := newFlagService(flagRepo, new(MockEntityRepo), userRepo, new(MockNotificationRepo), new(MockEmailService), new(MockActivityService))

		socialMod := &domain.User{ID: 10, Permissions: []string{"list_social_flags"}}
		userRepo.On("GetByID", ctx, int32(10)).Return(socialMod, nil).Once()
		flagRepo.On("List", ctx, mock.MatchedBy(func(f repository.FlagFilter) bool {
			return f.Track != nil && *f.Track == domain.TrackSocial && f.ActiveOnly
		})).Return([]domain.Flag{{ID: 1}}, int32(1), nil).Once()

		flags, total, err := svc.ListFlags(ctx, 10, nil, false, 1, 25)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Len(t, flags, 1)
		flagRepo.AssertExpectations(t)
	})

	t.Run("SuperuserSeesBothTracks", func(t *testing.T) {
		flagRepo := new(MockFlagRepo)
		userRepo := new(MockUserRepo)
		svc := newFlagService(flagRepo, new(MockEntityRepo), userRepo, new(MockNotificationRepo), new(MockEmailService), new(MockActivityService))

		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Superuser: true}, nil).Once()
		flagRepo.On("List", ctx, mock.MatchedBy(func(f repository.FlagFilter) bool {
			return f.Track == nil
		})).Return([]domain.Flag{}, int32(0), nil).Once()

		_, _, err := svc.ListFlags(ctx, 1, nil, false, 1, 25)
		assert.NoError(t, err)
	})

	t.Run("MemberDenied", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := newFlagService(new(MockFlagRepo), new(MockEntityRepo), userRepo, new(MockNotificationRepo), new(MockEmailService), new(MockActivityService))

		userRepo.On("GetByID", ctx, int32(5)).Return(&domain.User{ID: 5}, nil).Once()

		_, _, err := svc.ListFlags(ctx, 5, nil, false, 1, 25)
		assert.True(t, domain.IsAuthorization(err))
	})
}
