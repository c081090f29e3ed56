package http

import (
	"encoding/json"
	"net/http"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/service"
)

type BanHandler struct {
	banSvc service.BanService
}

func NewBanHandler(banSvc service.BanService) *BanHandler {
	return &BanHandler{banSvc: banSvc}
}

type createBanRequest struct {
	TargetUserID int32   `json:"target_user_id"`
	Track        string  `json:"track"`
	Reason       string  `json:"reason"`
	Days         int32   `json:"days"`
	FlagIDs      []int32 `json:"flag_ids,omitempty"`
}

func (h *BanHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req createBanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	ban, err := h.banSvc.CreateBan(r.Context(), userID, req.TargetUserID, domain.Track(req.Track), req.Reason, req.Days, req.FlagIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ban)
}

func (h *BanHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	banID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	ban, err := h.banSvc.GetBan(r.Context(), userID, banID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ban)
}

func (h *BanHandler) Lift(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	banID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	ban, err := h.banSvc.LiftBan(r.Context(), userID, banID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ban)
}

func (h *BanHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	page, pageSize := pagination(r)
	activeOnly := r.URL.Query().Get("active") == "true"

	bans, total, err := h.banSvc.ListBans(r.Context(), userID, activeOnly, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: bans, Total: total})
}
