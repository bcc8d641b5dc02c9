package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"secretstore/internal/common"
	"secretstore/internal/models"
)

// SecretRepository defines the persistence operations needed by the
// SecretService.
type SecretRepository interface {
	Create(ctx context.Context, sec *models.Secret) error
	GetByID(ctx context.Context, id string) (*models.Secret, error)
	ListAll(ctx context.Context) ([]models.Secret, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Secret, error)
	SearchAll(ctx context.Context, pattern string) ([]models.Secret, error)
	SearchByOwner(ctx context.Context, ownerID, pattern string) ([]models.Secret, error)
	Update(ctx context.Context, sec *models.Secret) error
	Delete(ctx context.Context, id string) error
}

// OwnerReader checks that a referenced owner exists.
type OwnerReader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// SecretService applies owner scoping and authorization on top of the
// secret repository. Admin identities see every secret; everyone else
// sees only their own.
type SecretService struct {
	secrets SecretRepository
	users   OwnerReader
	audit   AuditAppender
}

// NewSecretService constructs a SecretService with the provided
// repositories and audit sink.
func NewSecretService(secrets SecretRepository, users OwnerReader, audit AuditAppender) *SecretService {
	return &SecretService{secrets: secrets, users: users, audit: audit}
}

// List returns the secrets visible to the identity, ordered by id.
func (s *SecretService) List(ctx context.Context, identity models.Identity) ([]models.Secret, error) {
	if identity.IsAdmin() {
		return s.secrets.ListAll(ctx)
	}
	return s.secrets.ListByOwner(ctx, identity.UserID)
}

// Search returns the visible secrets whose type or value contains pattern,
// case-insensitive. An empty pattern is equivalent to List, so the result
// is always a subset of List.
func (s *SecretService) Search(ctx context.Context, identity models.Identity, pattern string) ([]models.Secret, error) {
	if pattern == "" {
		return s.List(ctx, identity)
	}
	if identity.IsAdmin() {
		return s.secrets.SearchAll(ctx, pattern)
	}
	return s.secrets.SearchByOwner(ctx, identity.UserID, pattern)
}

// Get fetches one secret including its value. Only the owner or an admin
// may read it.
func (s *SecretService) Get(ctx context.Context, identity models.Identity, id string) (*models.Secret, error) {
	sec, err := s.secrets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && sec.OwnerID != identity.UserID {
		return nil, common.ErrForbidden
	}
	return sec, nil
}

// Create stores a new secret. An empty ownerID defaults to the caller;
// a non-admin may only create secrets for themselves. The owner must
// reference an existing user. expiresInDays of zero means no expiry.
func (s *SecretService) Create(ctx context.Context, identity models.Identity, ownerID, value, secretType string, expiresInDays int) (*models.Secret, error) {
	if value == "" || secretType == "" {
		return nil, fmt.Errorf("value and type are required: %w", common.ErrValidation)
	}
	if ownerID == "" {
		ownerID = identity.UserID
	}
	if !identity.IsAdmin() && ownerID != identity.UserID {
		return nil, common.ErrForbidden
	}
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("owner %s: %w", ownerID, err)
	}

	now := time.Now().UTC()
	sec := &models.Secret{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Value:     value,
		Type:      secretType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if expiresInDays > 0 {
		expires := now.AddDate(0, 0, expiresInDays)
		sec.ExpiresAt = &expires
	}

	if err := s.secrets.Create(ctx, sec); err != nil {
		return nil, err
	}
	if err := s.appendAudit(ctx, identity, models.ActionSecretCreate, sec.ID); err != nil {
		return nil, err
	}
	return sec, nil
}

// Update rewrites the value and/or type of an existing secret. With both
// fields nil the call is a no-op that still succeeds and returns the
// current record without touching updated_at or the audit log.
func (s *SecretService) Update(ctx context.Context, identity models.Identity, id string, value, secretType *string) (*models.Secret, error) {
	sec, err := s.secrets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && sec.OwnerID != identity.UserID {
		return nil, common.ErrForbidden
	}
	if value == nil && secretType == nil {
		return sec, nil
	}

	if value != nil {
		if *value == "" {
			return nil, fmt.Errorf("value cannot be empty: %w", common.ErrValidation)
		}
		sec.Value = *value
	}
	if secretType != nil {
		if *secretType == "" {
			return nil, fmt.Errorf("type cannot be empty: %w", common.ErrValidation)
		}
		sec.Type = *secretType
	}
	sec.UpdatedAt = time.Now().UTC()

	if err := s.secrets.Update(ctx, sec); err != nil {
		return nil, err
	}
	if err := s.appendAudit(ctx, identity, models.ActionSecretUpdate, sec.ID); err != nil {
		return nil, err
	}
	return sec, nil
}

// Delete removes a secret. Deleting the same id twice yields success then
// ErrNotFound, never a second success.
func (s *SecretService) Delete(ctx context.Context, identity models.Identity, id string) error {
	sec, err := s.secrets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !identity.IsAdmin() && sec.OwnerID != identity.UserID {
		return common.ErrForbidden
	}
	if err := s.secrets.Delete(ctx, id); err != nil {
		return err
	}
	return s.appendAudit(ctx, identity, models.ActionSecretDelete, id)
}

func (s *SecretService) appendAudit(ctx context.Context, identity models.Identity, action, secretID string) error {
	if err := s.audit.Append(ctx, &models.AuditEvent{
		ActorID:    identity.UserID,
		Action:     action,
		ObjectType: models.ObjectSecret,
		ObjectID:   secretID,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("audit %s: %w", action, err)
	}
	return nil
}
