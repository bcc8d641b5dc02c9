// Package service provides the business logic for authentication, secret
// access, user administration and statistics, delegating persistence to
// repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"secretstore/internal/common"
	"secretstore/internal/common/security"
	"secretstore/internal/models"
)

// AuthRepository defines the persistence operations required by the
// authentication service.
type AuthRepository interface {
	// GetByUsername fetches a user by exact username match.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuditAppender records one audit event per mutating call.
type AuditAppender interface {
	Append(ctx context.Context, event *models.AuditEvent) error
}

// AuthService validates credentials and issues session tokens.
type AuthService struct {
	users  AuthRepository
	audit  AuditAppender
	tokens *security.TokenIssuer
}

// NewAuthService constructs an AuthService using the provided repository,
// audit sink and token issuer.
func NewAuthService(users AuthRepository, audit AuditAppender, tokens *security.TokenIssuer) *AuthService {
	return &AuthService{users: users, audit: audit, tokens: tokens}
}

// Login validates a username/password pair and returns a signed session
// token along with the authenticated user. Unknown usernames and password
// mismatches produce the same ErrInvalidCredentials so callers cannot
// probe for registered usernames. A successful login is recorded in the
// audit log before the token is returned.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	if username == "" || password == "" {
		return "", nil, fmt.Errorf("username and password are required: %w", common.ErrValidation)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil, common.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	if !security.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, common.ErrInvalidCredentials
	}

	if err := s.audit.Append(ctx, &models.AuditEvent{
		ActorID:    user.ID,
		Action:     models.ActionLogin,
		ObjectType: models.ObjectSession,
		ObjectID:   user.ID,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		return "", nil, fmt.Errorf("audit login: %w", err)
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}
