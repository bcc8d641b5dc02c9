package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"secretstore/internal/common"
	"secretstore/internal/common/security"
	"secretstore/internal/models"
)

// UserRepository defines the persistence operations needed by the
// UserService.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id string) error
}

// UserService implements admin-only user administration.
type UserService struct {
	users UserRepository
	audit AuditAppender
}

// NewUserService constructs a UserService with the provided repository and
// audit sink.
func NewUserService(users UserRepository, audit AuditAppender) *UserService {
	return &UserService{users: users, audit: audit}
}

// List returns all user accounts, admin-only. Password hashes stay inside
// the service boundary.
func (s *UserService) List(ctx context.Context, identity models.Identity) ([]models.User, error) {
	if !identity.IsAdmin() {
		return nil, common.ErrForbidden
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// Create registers a new account, admin-only. An empty role defaults to
// the regular user role. Duplicate usernames map to ErrConflict.
func (s *UserService) Create(ctx context.Context, identity models.Identity, username, password, role string) (*models.User, error) {
	if !identity.IsAdmin() {
		return nil, common.ErrForbidden
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrValidation)
	}
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q: %w", role, common.ErrValidation)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.audit.Append(ctx, &models.AuditEvent{
		ActorID:    identity.UserID,
		Action:     models.ActionUserCreate,
		ObjectType: models.ObjectUser,
		ObjectID:   user.ID,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("audit user create: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Delete removes an account, admin-only. The account's secrets are
// cascade-deleted by the repository. Admins cannot delete themselves,
// which also keeps the last admin alive.
func (s *UserService) Delete(ctx context.Context, identity models.Identity, userID string) error {
	if !identity.IsAdmin() {
		return common.ErrForbidden
	}
	if userID == identity.UserID {
		return fmt.Errorf("cannot delete own account: %w", common.ErrValidation)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.audit.Append(ctx, &models.AuditEvent{
		ActorID:    identity.UserID,
		Action:     models.ActionUserDelete,
		ObjectType: models.ObjectUser,
		ObjectID:   userID,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("audit user delete: %w", err)
	}
	return nil
}

// EnsureAdmin seeds the bootstrap administrator account if it does not
// exist yet. Called once at startup with credentials from configuration;
// not an audited client action.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("bootstrap admin credentials are required: %w", common.ErrValidation)
	}

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("lookup bootstrap admin: %w", err)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}
	now := time.Now().UTC()
	return s.users.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
