package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"secretstore/internal/common"
	"secretstore/internal/middleware"
	"secretstore/internal/models"
)

// SecretService defines the interface for secret operations required by
// the SecretHandler.
type SecretService interface {
	List(ctx context.Context, identity models.Identity) ([]models.Secret, error)
	Search(ctx context.Context, identity models.Identity, pattern string) ([]models.Secret, error)
	Get(ctx context.Context, identity models.Identity, id string) (*models.Secret, error)
	Create(ctx context.Context, identity models.Identity, ownerID, value, secretType string, expiresInDays int) (*models.Secret, error)
	Update(ctx context.Context, identity models.Identity, id string, value, secretType *string) (*models.Secret, error)
	Delete(ctx context.Context, identity models.Identity, id string) error
}

// SecretHandler handles HTTP requests for the secrets collection.
type SecretHandler struct {
	SecretService SecretService
}

// CreateSecretRequest represents the JSON payload for secret creation.
// OwnerID may be omitted to create a secret for the caller.
type CreateSecretRequest struct {
	OwnerID       string `json:"owner_id"`
	Value         string `json:"value"`
	Type          string `json:"type"`
	ExpiresInDays int    `json:"expires_in_days"`
}

// UpdateSecretRequest represents the JSON payload for secret update.
// Nil fields are left untouched.
type UpdateSecretRequest struct {
	Value *string `json:"value"`
	Type  *string `json:"type"`
}

// identity pulls the authenticated identity or rejects the request.
func identity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	id, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "authentication required")
	}
	return id, ok
}

// List handles GET /api/secrets. With a q query parameter it performs a
// case-insensitive substring search; without one it lists everything the
// caller may see. Values are redacted from listings.
func (h *SecretHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}

	secrets, err := h.SecretService.Search(r.Context(), ident, r.URL.Query().Get("q"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}

	for i := range secrets {
		secrets[i].Value = ""
	}
	if secrets == nil {
		secrets = []models.Secret{}
	}
	common.RespondWithJSON(w, http.StatusOK, secrets)
}

// Get handles GET /api/secrets/{id} and returns the full record including
// the value, for the owner or an admin.
func (h *SecretHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}

	sec, err := h.SecretService.Get(r.Context(), ident, chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, sec)
}

// Create handles POST /api/secrets.
func (h *SecretHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}

	var req CreateSecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sec, err := h.SecretService.Create(r.Context(), ident, req.OwnerID, req.Value, req.Type, req.ExpiresInDays)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, sec)
}

// Update handles PUT /api/secrets/{id}.
func (h *SecretHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}

	var req UpdateSecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sec, err := h.SecretService.Update(r.Context(), ident, chi.URLParam(r, "id"), req.Value, req.Type)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, sec)
}

// Delete handles DELETE /api/secrets/{id}. Repeating the delete yields
// 404, never a second success.
func (h *SecretHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.SecretService.Delete(r.Context(), ident, chi.URLParam(r, "id")); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
