package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mmynk/santa/internal/auth"
	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/internal/service"
	"github.com/mmynk/santa/internal/storage"
)

// userJSON is the public view of a participant; credentials never leave
// the config.
type userJSON struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type groupJSON struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Budget   float64 `json:"budget"`
	Currency string  `json:"currency"`
}

func toUserJSON(p *models.Participant) userJSON {
	return userJSON{Username: p.Username, Name: p.Name}
}

func toGroupJSON(g *models.Group) groupJSON {
	return groupJSON{ID: g.ID, Name: g.Name, Budget: g.Budget, Currency: g.Currency}
}

// handleLogin checks credentials against the configured roster and issues
// a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	participant, err := s.authenticator.Authenticate(req.Username, req.Password)
	if err != nil {
		slog.Warn("Login failed", "username", req.Username)
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	token, err := s.jwtManager.Generate(participant.Username)
	if err != nil {
		slog.Error("Failed to generate token", "username", participant.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	slog.Info("Login successful", "username", participant.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserJSON(participant),
	})
}

// handleMyGroups lists the groups the caller belongs to.
func (s *Server) handleMyGroups(w http.ResponseWriter, r *http.Request) {
	username := GetUsername(r.Context())

	groups := s.exchange.GroupsFor(username)
	out := make([]groupJSON, len(groups))
	for i := range groups {
		out[i] = toGroupJSON(&groups[i])
	}

	writeJSON(w, http.StatusOK, map[string]any{"groups": out})
}

// handleAssignment is the giver view: who the caller buys a gift for in
// this group, along with the recipient's wish list.
func (s *Server) handleAssignment(w http.ResponseWriter, r *http.Request) {
	username := GetUsername(r.Context())
	groupID := mux.Vars(r)["groupID"]

	group, err := s.exchange.Group(groupID)
	if err != nil {
		writeError(w, http.StatusNotFound, "no such group")
		return
	}

	recipient, err := s.exchange.RecipientFor(r.Context(), groupID, username)
	switch {
	case errors.Is(err, service.ErrParticipantNotFound):
		writeError(w, http.StatusNotFound, "you are not part of this group")
		return
	case errors.Is(err, storage.ErrAssignmentNotFound):
		writeError(w, http.StatusNotFound, "no assignment for this group yet")
		return
	case err != nil:
		slog.Error("Failed to resolve recipient", "group_id", groupID, "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load assignment")
		return
	}

	wishes, err := s.wishes.List(r.Context(), recipient.Username)
	if err != nil {
		slog.Error("Failed to load recipient wishes", "group_id", groupID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load wishes")
		return
	}
	if wishes == nil {
		wishes = []models.WishItem{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"group":     toGroupJSON(group),
		"recipient": toUserJSON(recipient),
		"wishes":    wishes,
	})
}

// handleListWishes returns the caller's own wish list.
func (s *Server) handleListWishes(w http.ResponseWriter, r *http.Request) {
	username := GetUsername(r.Context())

	wishes, err := s.wishes.List(r.Context(), username)
	if err != nil {
		slog.Error("Failed to list wishes", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load wishes")
		return
	}
	if wishes == nil {
		wishes = []models.WishItem{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"wishes": wishes})
}

// handleAddWish appends an item to the caller's wish list.
func (s *Server) handleAddWish(w http.ResponseWriter, r *http.Request) {
	username := GetUsername(r.Context())

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := s.wishes.Add(r.Context(), username, req.Content)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// handleRemoveWish deletes one of the caller's wish items.
func (s *Server) handleRemoveWish(w http.ResponseWriter, r *http.Request) {
	username := GetUsername(r.Context())
	wishID := mux.Vars(r)["wishID"]

	if err := s.wishes.Remove(r.Context(), username, wishID); err != nil {
		if errors.Is(err, storage.ErrWishNotFound) {
			writeError(w, http.StatusNotFound, "no such wish")
			return
		}
		slog.Error("Failed to remove wish", "username", username, "wish_id", wishID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove wish")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
