package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/logger"
	"honeycomb-backend/internal/repository"
)

const statsCacheKey = "site-stats"

type activityService struct {
	activityRepo repository.ActivityRepository
	streamCache  *expirable.LRU[string, []domain.Activity]
	statsCache   *expirable.LRU[string, *domain.SiteStats]
}

// NewActivityService builds the activity log service. Stream reads are
// cached for streamTTL and site stats for statsTTL; both caches serve
// possibly stale data for at most their TTL, which the read-heavy log
// tolerates by design.
func NewActivityService(activityRepo repository.ActivityRepository, maxEntries int, streamTTL, statsTTL time.Duration) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		streamCache:  expirable.NewLRU[string, []domain.Activity](maxEntries, nil, streamTTL),
		statsCache:   expirable.NewLRU[string, *domain.SiteStats](1, nil, statsTTL),
	}
}

func (s *activityService) Record(ctx context.Context, domainName, action string, actorID *int32, entity *domain.EntityRef) {
	tag := domain.ActivityTag(domainName, action)
	if !domain.KnownActivityTag(tag) {
		// Unknown tags are dropped on purpose so new call sites cannot
		// break the write path before the taxonomy catches up.
		logger.Debug("Dropping activity with unknown tag", "tag", tag)
		return
	}

	activity := &domain.Activity{
		Type:       tag,
		ActorID:    actorID,
		OccurredAt: time.Now(),
	}
	if entity != nil {
		activity.EntityKind = &entity.Kind
		activity.EntityID = &entity.ID
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		logger.Error("Failed to record activity", "tag", tag, "error", err)
	}
}

func (s *activityService) Stream(ctx context.Context, filter repository.ActivityFilter) ([]domain.Activity, error) {
	key := streamCacheKey(filter)
	if cached, ok := s.streamCache.Get(key); ok {
		return cached, nil
	}

	activities, err := s.activityRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.streamCache.Add(key, activities)
	return activities, nil
}

func (s *activityService) SiteStats(ctx context.Context) (*domain.SiteStats, error) {
	if cached, ok := s.statsCache.Get(statsCacheKey); ok {
		return cached, nil
	}

	stats, err := s.activityRepo.SiteStats(ctx)
	if err != nil {
		return nil, err
	}
	s.statsCache.Add(statsCacheKey, stats)
	return stats, nil
}

func streamCacheKey(filter repository.ActivityFilter) string {
	kind, id, typ := "", "", ""
	if filter.EntityKind != nil {
		kind = string(*filter.EntityKind)
	}
	if filter.EntityID != nil {
		id = fmt.Sprintf("%d", *filter.EntityID)
	}
	if filter.Type != nil {
		typ = *filter.Type
	}
	return fmt.Sprintf("%s|%s|%s|%d|%d", kind, id, typ, filter.Page, filter.PageSize)
}
