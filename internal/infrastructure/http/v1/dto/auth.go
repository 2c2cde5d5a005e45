package dto

import (
	"time"

	"hirebase/internal/domain/auth"
)

// LoginRequest is the login payload. The identifier accepts a username
// or email.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	CaptchaToken    string `json:"captcha_token,omitempty"`
	Force           bool   `json:"force,omitempty"`
}

// ToCredentials converts to domain credentials.
func (r LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		UsernameOrEmail: r.UsernameOrEmail,
		Password:        r.Password,
		CaptchaToken:    r.CaptchaToken,
		Force:           r.Force,
	}
}

// UserResponse is the user shape exposed to clients.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	FullName    string     `json:"full_name"`
	IsAdmin     bool       `json:"is_admin"`
	Roles       []string   `json:"roles"`
	Permissions []string   `json:"permissions"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// FromUser maps a domain user to its response shape.
func FromUser(u *auth.User) UserResponse {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Code)
	}
	permissions := u.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		IsAdmin:     u.IsAdmin,
		Roles:       roles,
		Permissions: permissions,
		LastLoginAt: u.LastLoginAt,
	}
}

// SessionResponse describes the caller's session state.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}

// LoginResponse is returned on successful login. The session token rides
// in an HTTP-only cookie, not in the body.
type LoginResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}
