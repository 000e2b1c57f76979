package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/alumnihub/portal-server/internal/api/middleware"
	"github.com/alumnihub/portal-server/internal/models"
	"github.com/alumnihub/portal-server/internal/services"
	"github.com/alumnihub/portal-server/internal/session"
)

// AuthHandler handles HTTP requests for authentication and profiles.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupPayload defines the structure for signup requests.
type SignupPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Login authenticates a user and opens a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("email", payload.Email).Msg("Failed login attempt")
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Login failed")
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user, "token": token})
}

// Signup registers a new user and opens a session.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.service.Signup(r.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateIdentity):
			writeError(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, services.ErrMissingField):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Str("email", payload.Email).Msg("Signup failed")
			writeError(w, http.StatusInternalServerError, "Signup failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user, "token": token})
}

// Verify returns the identity snapshot behind the request's session.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid or expired session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": snapshot})
}

// UpdateProfile merge-patches the caller's profile and refreshes the
// session snapshot.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch models.UserProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token := middleware.TokenFromRequest(r)
	user, err := h.service.UpdateProfile(r.Context(), token, patch)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			writeError(w, http.StatusUnauthorized, "Invalid or expired session")
		case errors.Is(err, services.ErrIdentityNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			log.Error().Err(err).Msg("Profile update failed")
			writeError(w, http.StatusInternalServerError, "Update failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Logout revokes the caller's session server-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), middleware.TokenFromRequest(r)); err != nil {
		log.Error().Err(err).Msg("Logout failed")
		writeError(w, http.StatusInternalServerError, "Logout failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
