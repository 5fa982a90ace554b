package handler

import (
	"encoding/json"
	"net/http"

	"votepulse/internal/domain"
	"votepulse/internal/middleware"
	"votepulse/internal/service"
	"votepulse/pkg/logger"
)

// AuthHandler handles registration, login and profile requests
type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.authService.Register(r.Context(), &req); err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Account created",
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Me handles GET /api/users/me. The auth middleware has already resolved the
// profile, so this only reads it back out of the context.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile := middleware.UserFromContext(r.Context())
	if profile == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
