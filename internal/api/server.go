// Package api exposes the exchange over HTTP: login, the caller's groups
// and assignment, and wish list management. This is the thin boundary the
// UI talks to; all domain rules live in the service layer.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/mmynk/santa/internal/auth"
	"github.com/mmynk/santa/internal/service"
)

// Server wires the services into an HTTP handler.
type Server struct {
	exchange      *service.ExchangeService
	wishes        *service.WishService
	authenticator *auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewServer creates the API server over the given services.
func NewServer(exchange *service.ExchangeService, wishes *service.WishService, authenticator *auth.Authenticator, jwtManager *auth.JWTManager) *Server {
	return &Server{
		exchange:      exchange,
		wishes:        wishes,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Handler builds the router with logging, CORS and auth middleware applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/login", s.handleLogin).Methods(http.MethodPost)

	authed := r.PathPrefix("/api/v1").Subrouter()
	authed.Use(RequireAuth(s.jwtManager))
	authed.HandleFunc("/me/groups", s.handleMyGroups).Methods(http.MethodGet)
	authed.HandleFunc("/groups/{groupID}/assignment", s.handleAssignment).Methods(http.MethodGet)
	authed.HandleFunc("/me/wishes", s.handleListWishes).Methods(http.MethodGet)
	authed.HandleFunc("/me/wishes", s.handleAddWish).Methods(http.MethodPost)
	authed.HandleFunc("/me/wishes/{wishID}", s.handleRemoveWish).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return LoggingMiddleware(c.Handler(r))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError sends a JSON error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
