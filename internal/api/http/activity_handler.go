package http

import (
	"net/http"
	"strconv"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/repository"
	"honeycomb-backend/internal/service"
)

type ActivityHandler struct {
	activitySvc service.ActivityService
}

func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// Stats serves the site-wide aggregate counters.
func (h *ActivityHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.activitySvc.SiteStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Stream serves the filtered activity log, newest first.
func (h *ActivityHandler) Stream(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	filter := repository.ActivityFilter{Page: page, PageSize: pageSize}

	if raw := r.URL.Query().Get("kind"); raw != "" {
		kind, err := domain.ParseEntityKind(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		filter.EntityKind = &kind
	}
	if raw := r.URL.Query().Get("id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid entity id"})
			return
		}
		id := int32(v)
		filter.EntityID = &id
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		filter.Type = &raw
	}

	activities, err := h.activitySvc.Stream(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}
