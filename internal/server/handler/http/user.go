package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"secretstore/internal/common"
	"secretstore/internal/models"
)

// UserService defines the interface for user administration required by
// the UserHandler.
type UserService interface {
	List(ctx context.Context, identity models.Identity) ([]models.User, error)
	Create(ctx context.Context, identity models.Identity, username, password, role string) (*models.User, error)
	Delete(ctx context.Context, identity models.Identity, userID string) error
}

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	UserService UserService
}

// CreateUserRequest represents the JSON payload for user creation.
// Role defaults to the regular user role when omitted.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// List handles GET /api/users, admin-only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}

	users, err := h.UserService.List(r.Context(), ident)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

// Create handles POST /api/users, admin-only. The response never carries
// the password or its hash.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.UserService.Create(r.Context(), ident, req.Username, req.Password, req.Role)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

// Delete handles DELETE /api/users/{id}, admin-only. The user's secrets
// are cascade-deleted.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.UserService.Delete(r.Context(), ident, chi.URLParam(r, "id")); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
