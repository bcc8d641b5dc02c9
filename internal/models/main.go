// Package models defines the core data structures for users, secrets,
// audit events and derived statistics.
package models

import "time"

// Role values assignable to a user.
const (
	// RoleAdmin grants visibility over all users and secrets.
	RoleAdmin = "admin"
	// RoleUser restricts visibility to the caller's own secrets.
	RoleUser = "user"
)

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User represents an application user account.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Username is the unique login name.
	Username string `json:"username"`
	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `json:"-"`
	// Role is either RoleAdmin or RoleUser.
	Role string `json:"role"`
	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the account was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// Secret holds an opaque stored value along with ownership metadata.
type Secret struct {
	// ID is the unique identifier for the secret.
	ID string `json:"id"`
	// OwnerID references the user owning this secret.
	OwnerID string `json:"owner_id"`
	// Value is the opaque secret payload. Cleared in listings.
	Value string `json:"value,omitempty"`
	// Type is a free-form tag ("password", "note", ...).
	Type string `json:"type"`
	// ExpiresAt is an optional expiry after which the secret is purged.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	// CreatedAt is when the secret was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the secret was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is the authenticated caller context attached to a request.
type Identity struct {
	// UserID is the id of the authenticated user.
	UserID string
	// Role is the role carried by the credentials.
	Role string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Audit action kinds, one per mutating call.
const (
	ActionLogin        = "login"
	ActionSecretCreate = "secret.create"
	ActionSecretUpdate = "secret.update"
	ActionSecretDelete = "secret.delete"
	ActionUserCreate   = "user.create"
	ActionUserDelete   = "user.delete"
)

// Object types recorded alongside audit actions.
const (
	ObjectSession = "session"
	ObjectSecret  = "secret"
	ObjectUser    = "user"
)

// AuditEvent is an immutable record of a mutating or authentication action.
type AuditEvent struct {
	// ID is the sequence number assigned on append.
	ID int64 `json:"id"`
	// ActorID is the id of the user who performed the action.
	ActorID string `json:"actor_id"`
	// Action is one of the Action* constants.
	Action string `json:"action"`
	// ObjectType names the kind of object acted on.
	ObjectType string `json:"object_type"`
	// ObjectID is the id of the object acted on.
	ObjectID string `json:"object_id"`
	// CreatedAt is when the event was recorded.
	CreatedAt time.Time `json:"created_at"`
}

// Statistics is a point-in-time aggregate derived from the audit log.
type Statistics struct {
	// TotalActions is the number of recorded audit events.
	TotalActions int64 `json:"total_actions"`
	// UniqueUsers is the number of distinct actors in the log.
	UniqueUsers int64 `json:"unique_users"`
	// FirstActiveUser is the username of the actor of the earliest event.
	FirstActiveUser string `json:"first_active_user"`
	// LastActiveUser is the username of the actor of the latest event.
	LastActiveUser string `json:"last_active_user"`
}
