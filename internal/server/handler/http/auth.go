// Package http provides the HTTP handlers and routing for the secrets
// access and administration API.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"secretstore/internal/common"
	"secretstore/internal/models"
)

// AuthService defines the interface for authentication operations required
// by the HTTP handlers.
type AuthService interface {
	// Login validates credentials and returns a session token with the
	// authenticated user.
	Login(ctx context.Context, username, password string) (string, *models.User, error)
}

// AuthHandler handles HTTP requests for login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token and the caller's account.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login handles POST /api/auth/login requests. A malformed body is a
// validation error; unknown usernames and wrong passwords both produce
// the same 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, LoginResponse{Token: token, User: user})
}
