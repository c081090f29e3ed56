package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/service"
)

type FlagHandler struct {
	flagSvc service.FlagService
}

func NewFlagHandler(flagSvc service.FlagService) *FlagHandler {
	return &FlagHandler{flagSvc: flagSvc}
}

type createFlagRequest struct {
	TargetKind string `json:"target_kind"`
	TargetID   int32  `json:"target_id"`
	Track      string `json:"track"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}

type resolveFlagRequest struct {
	Resolution string `json:"resolution"`
}

type listResponse struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
}

func (h *FlagHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req createFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	track, err := domain.ParseTrack(req.Track)
	if err != nil {
		writeError(w, err)
		return
	}

	// The kind passes through unparsed; flagging a kind outside the
	// flaggable set is an authorization failure, not a validation one.
	target := domain.EntityRef{Kind: domain.EntityKind(req.TargetKind), ID: req.TargetID}
	flag, err := h.flagSvc.CreateFlag(r.Context(), userID, target, track, req.Subject, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, flag)
}

func (h *FlagHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	flagID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	flag, err := h.flagSvc.GetFlag(r.Context(), userID, flagID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flag)
}

func (h *FlagHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	flagID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	flag, joined, err := h.flagSvc.JoinFlag(r.Context(), userID, flagID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !joined {
		writeJSON(w, http.StatusOK, warningResponse{Warning: "already a participant", Data: flag})
		return
	}
	writeJSON(w, http.StatusOK, flag)
}

func (h *FlagHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	flagID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	var req resolveFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	flag, err := h.flagSvc.ResolveFlag(r.Context(), userID, flagID, req.Resolution)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flag)
}

func (h *FlagHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	page, pageSize := pagination(r)

	if r.URL.Query().Get("mine") == "true" {
		flags, total, err := h.flagSvc.ListMyFlags(r.Context(), userID, page, pageSize)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, listResponse{Items: flags, Total: total})
		return
	}

	var track *domain.Track
	if raw := r.URL.Query().Get("track"); raw != "" {
		t, err := domain.ParseTrack(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		track = &t
	}
	includeInactive := r.URL.Query().Get("all") == "true"

	flags, total, err := h.flagSvc.ListFlags(r.Context(), userID, track, includeInactive, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: flags, Total: total})
}

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return int32(id), nil
}

func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(25)
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			page = int32(v)
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 && v <= 100 {
			pageSize = int32(v)
		}
	}
	return page, pageSize
}
