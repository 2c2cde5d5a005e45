// Package auth provides authentication and authorization domain logic.
package auth

import (
	"context"

	"hirebase/internal/core/id"
)

// UserRepository defines user storage operations.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves user by ID.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByEmail retrieves user by email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates user data.
	Update(ctx context.Context, user *User) error

	// List retrieves users with filtering.
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)

	// LoadRoles loads user's roles.
	LoadRoles(ctx context.Context, userID id.ID) ([]Role, error)

	// LoadPermissions loads user's permission codes (flattened from roles).
	LoadPermissions(ctx context.Context, userID id.ID) ([]string, error)

	// AssignRole assigns a role to user.
	AssignRole(ctx context.Context, userID, roleID id.ID) error

	// Exists checks if email exists.
	Exists(ctx context.Context, email string) (bool, error)
}

// RoleRepository defines role storage operations.
type RoleRepository interface {
	// Create creates a new role.
	Create(ctx context.Context, role *Role) error

	// GetByCode retrieves role by code.
	GetByCode(ctx context.Context, code string) (*Role, error)

	// List retrieves all roles.
	List(ctx context.Context) ([]Role, error)

	// ListPermissions retrieves all known permissions.
	ListPermissions(ctx context.Context) ([]Permission, error)
}

// SessionRepository defines login session storage operations.
type SessionRepository interface {
	// Create saves a new session.
	Create(ctx context.Context, session *Session) error

	// GetByID retrieves a session by ID.
	GetByID(ctx context.Context, sessionID id.ID) (*Session, error)

	// GetActiveByUser returns the user's unexpired, unrevoked sessions.
	GetActiveByUser(ctx context.Context, userID id.ID) ([]Session, error)

	// Revoke revokes a single session.
	Revoke(ctx context.Context, sessionID id.ID, reason string) error

	// RevokeAllForUser revokes all sessions for a user.
	RevokeAllForUser(ctx context.Context, userID id.ID, reason string) error

	// DeleteExpired removes expired sessions.
	DeleteExpired(ctx context.Context) (int64, error)
}

// UserFilter for listing users.
type UserFilter struct {
	Search   string
	IsActive *bool
	RoleCode string
	Limit    int
	Offset   int
}
