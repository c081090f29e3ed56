package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/logger"
	"honeycomb-backend/internal/security"
	"honeycomb-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

type warningResponse struct {
	Warning string      `json:"warning"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses in one place
// so the flag, application and ban handlers cannot drift apart.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsAuthorization(err):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case domain.IsValidation(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrAlreadyClaimed), errors.Is(err, domain.ErrAlreadyResolved):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logger.Error("Unhandled error in request", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
