package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"honeycomb-backend/internal/logger"
	"honeycomb-backend/internal/security"
)

type contextKey string

const userIDKey contextKey = "user-id"

// UserIDFromContext returns the authenticated user id injected by
// AuthMiddleware. The bool is false on unauthenticated requests.
func UserIDFromContext(ctx context.Context) (int32, bool) {
	id, ok := ctx.Value(userIDKey).(int32)
	return id, ok
}

type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

// RequireAuth validates the bearer token and injects the user id into the
// request context. Requests without a valid access token get 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractToken(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization token is not provided"})
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "access token required"})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	if len(header) > 7 && strings.EqualFold(header[0:7], "BEARER ") {
		return header[7:], true
	}
	return header, true
}

// RequestLogger assigns each request an id and logs method, path, status
// and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.WithRequest(requestID, r.Method, r.URL.Path).Info("Request handled",
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
