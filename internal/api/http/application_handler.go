package http

import (
	"encoding/json"
	"net/http"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/service"
)

type ApplicationHandler struct {
	appSvc service.ApplicationService
}

func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

type createApplicationRequest struct {
	Type string `json:"type"`
	Body string `json:"body"`
}

type resolveApplicationRequest struct {
	Resolution string `json:"resolution"`
}

func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req createApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	appType, err := domain.ParseApplicationType(req.Type)
	if err != nil {
		writeError(w, err)
		return
	}

	app, err := h.appSvc.CreateApplication(r.Context(), userID, appType, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	appID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	app, err := h.appSvc.GetApplication(r.Context(), userID, appID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) Claim(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	appID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	app, err := h.appSvc.ClaimApplication(r.Context(), userID, appID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	appID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	var req resolveApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	app, err := h.appSvc.ResolveApplication(r.Context(), userID, appID, domain.ApplicationResolution(req.Resolution))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	page, pageSize := pagination(r)

	if r.URL.Query().Get("mine") == "true" {
		apps, total, err := h.appSvc.ListParticipating(r.Context(), userID, page, pageSize)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, listResponse{Items: apps, Total: total})
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
	includeResolved := r.URL.Query().Get("all") == "true"

	apps, total, err := h.appSvc.ListApplications(r.Context(), userID, track, includeResolved, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: apps, Total: total})
}
