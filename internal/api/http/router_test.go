package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/repository"
	"honeycomb-backend/internal/security"
)

type stubActivityService struct {
	entries []domain.Activity
	stats   *domain.SiteStats
}

func (s *stubActivityService) Record(context.Context, string, string, *int32, *domain.EntityRef) {}
func (s *stubActivityService) Stream(context.Context, repository.ActivityFilter) ([]domain.Activity, error) {
	return s.entries, nil
}
func (s *stubActivityService) SiteStats(context.Context) (*domain.SiteStats, error) {
	return s.stats, nil
}

type stubFlagService struct {
	gotKind domain.EntityKind
	err     error
}

func (s *stubFlagService) CreateFlag(_ context.Context, _ int32, target domain.EntityRef, _ domain.Track, _, _ string) (*domain.Flag, error) {
	s.gotKind = target.Kind
	return nil, s.err
}
func (s *stubFlagService) GetFlag(context.Context, int32, int32) (*domain.Flag, error) {
	return nil, nil
}
func (s *stubFlagService) JoinFlag(context.Context, int32, int32) (*domain.Flag, bool, error) {
	return nil, false, nil
}
func (s *stubFlagService) ResolveFlag(context.Context, int32, int32, string) (*domain.Flag, error) {
	return nil, nil
}
func (s *stubFlagService) ListFlags(context.Context, int32, *domain.Track, bool, int32, int32) ([]domain.Flag, int32, error) {
	return nil, 0, nil
}
func (s *stubFlagService) ListMyFlags(context.Context, int32, int32, int32) ([]domain.Flag, int32, error) {
	return nil, 0, nil
}

func newTestRouter(activity *stubActivityService, flagSvc *stubFlagService, tm security.TokenManager) http.Handler {
	return NewRouter(Handlers{
		Flag:     NewFlagHandler(flagSvc),
		Activity: NewActivityHandler(activity),
		AuthMW:   NewAuthMiddleware(tm),
	})
}

func TestRouter_ActivityStreamSurface(t *testing.T) {
	tm := security.NewTokenManager("test-secret-that-is-long-enough-for-hmac", 15, 60)
	activity := &stubActivityService{
		entries: []domain.Activity{{ID: 1, Type: "flag:create"}},
		stats:   &domain.SiteStats{Users: 3, Flags: 2},
	}
	r := newTestRouter(activity, &stubFlagService{}, tm)

	t.Run("RootServesCounters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/activitystream/", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var stats domain.SiteStats
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
		assert.Equal(t, *activity.stats, stats)
	})

	t.Run("StreamServesEntries", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/activitystream/stream", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var entries []domain.Activity
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "flag:create", entries[0].Type)
	})
}

func TestRouter_FlagCreateUnknownKindForbidden(t *testing.T) {
	tm := security.NewTokenManager("test-secret-that-is-long-enough-for-hmac", 15, 60)
	flagSvc := &stubFlagService{err: &domain.AuthorizationError{Track: domain.TrackContent}}
	r := newTestRouter(&stubActivityService{}, flagSvc, tm)

	token, err := tm.GenerateAccessToken(3, "u@test.com")
	require.NoError(t, err)

	body := `{"target_kind":"widget","target_id":4,"track":"content","subject":"Spam","body":"text"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/flags", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// The unparsed kind reaches the service, which rejects it as forbidden.
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, domain.EntityKind("widget"), flagSvc.gotKind)
}
