package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Auth         *AuthHandler
	Flag         *FlagHandler
	Application  *ApplicationHandler
	Ban          *BanHandler
	Activity     *ActivityHandler
	Notification *NotificationHandler
	AuthMW       *AuthMiddleware
}

// NewRouter builds the full route table. The activity stream endpoints are
// public; everything else behind /api/v1 that is not auth requires a token.
func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Auth
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", h.Auth.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	auth.Handle("/logout", h.AuthMW.RequireAuth(http.HandlerFunc(h.Auth.Logout))).Methods(http.MethodPost)

	// Activity stream, readable without a token. The root serves the
	// site-wide counters; /stream serves the log entries.
	stream := api.PathPrefix("/activitystream").Subrouter()
	stream.HandleFunc("/", h.Activity.Stats).Methods(http.MethodGet)
	stream.HandleFunc("/stream", h.Activity.Stream).Methods(http.MethodGet)

	// Flags
	flags := api.PathPrefix("/admin/flags").Subrouter()
	flags.Use(h.AuthMW.RequireAuth)
	flags.HandleFunc("", h.Flag.List).Methods(http.MethodGet)
	flags.HandleFunc("", h.Flag.Create).Methods(http.MethodPost)
	flags.HandleFunc("/{id:[0-9]+}", h.Flag.Get).Methods(http.MethodGet)
	flags.HandleFunc("/{id:[0-9]+}/join", h.Flag.Join).Methods(http.MethodPost)
	flags.HandleFunc("/{id:[0-9]+}/resolve", h.Flag.Resolve).Methods(http.MethodPost)

	// Applications
	apps := api.PathPrefix("/admin/applications").Subrouter()
	apps.Use(h.AuthMW.RequireAuth)
	apps.HandleFunc("", h.Application.List).Methods(http.MethodGet)
	apps.HandleFunc("", h.Application.Create).Methods(http.MethodPost)
	apps.HandleFunc("/{id:[0-9]+}", h.Application.Get).Methods(http.MethodGet)
	apps.HandleFunc("/{id:[0-9]+}/claim", h.Application.Claim).Methods(http.MethodPost)
	apps.HandleFunc("/{id:[0-9]+}/resolve", h.Application.Resolve).Methods(http.MethodPost)

	// Bans
	bans := api.PathPrefix("/admin/bans").Subrouter()
	bans.Use(h.AuthMW.RequireAuth)
	bans.HandleFunc("", h.Ban.List).Methods(http.MethodGet)
	bans.HandleFunc("", h.Ban.Create).Methods(http.MethodPost)
	bans.HandleFunc("/{id:[0-9]+}", h.Ban.Get).Methods(http.MethodGet)
	bans.HandleFunc("/{id:[0-9]+}/lift", h.Ban.Lift).Methods(http.MethodPost)

	// Notifications
	notes := api.PathPrefix("/notifications").Subrouter()
	notes.Use(h.AuthMW.RequireAuth)
	notes.HandleFunc("", h.Notification.List).Methods(http.MethodGet)
	notes.HandleFunc("/{id:[0-9]+}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}
