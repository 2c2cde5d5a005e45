// Package auth provides authentication and authorization domain logic.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hirebase/internal/core/apperror"
	appctx "hirebase/internal/core/context"
	"hirebase/internal/core/id"
	"hirebase/internal/core/tx"
	"hirebase/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts  int
	LockDuration      time.Duration
	PasswordMinLength int
	SessionTTL        time.Duration

	// SingleSession enforces at most one active session per user.
	SingleSession bool
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts:  5,
		LockDuration:      15 * time.Minute,
		PasswordMinLength: 8,
		SessionTTL:        12 * time.Hour,
		SingleSession:     true,
	}
}

// Service provides authentication and session logic.
type Service struct {
	userRepo    UserRepository
	roleRepo    RoleRepository
	sessionRepo SessionRepository
	txManager   tx.Manager
	tokens      *TokenService
	config      ServiceConfig
}

// NewService creates a new auth service.
func NewService(
	userRepo UserRepository,
	roleRepo RoleRepository,
	sessionRepo SessionRepository,
	txManager tx.Manager,
	tokens *TokenService,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		sessionRepo: sessionRepo,
		txManager:   txManager,
		tokens:      tokens,
		config:      config,
	}
}

// LoginResult carries the minted session token and the authenticated user.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// Login authenticates a user and opens a session.
// With SingleSession enabled, a second login fails with SESSION_EXISTS
// unless creds.Force is set, which revokes the previous session.
func (s *Service) Login(ctx context.Context, creds Credentials, userAgent, ipAddress string) (*LoginResult, error) {
	identifier := strings.ToLower(strings.TrimSpace(creds.UsernameOrEmail))
	if identifier == "" || creds.Password == "" {
		return nil, apperror.NewValidation("username_or_email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, identifier)
	if err != nil {
		return nil, apperror.NewUnauthorized("Invalid credentials")
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		user.RecordFailedLogin(s.config.MaxLoginAttempts, s.config.LockDuration)
		_ = s.userRepo.Update(ctx, user)
		return nil, apperror.NewUnauthorized("Invalid credentials")
	}

	if s.config.SingleSession {
		active, err := s.sessionRepo.GetActiveByUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("load active sessions: %w", err)
		}
		if len(active) > 0 {
			if !creds.Force {
				return nil, apperror.NewSessionExists()
			}
			if err := s.sessionRepo.RevokeAllForUser(ctx, user.ID, "forced login"); err != nil {
				return nil, fmt.Errorf("revoke previous sessions: %w", err)
			}
		}
	}

	roles, err := s.userRepo.LoadRoles(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	user.Roles = roles

	permissions, err := s.userRepo.LoadPermissions(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}
	user.Permissions = permissions

	session := &Session{
		ID:        id.New(),
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: time.Now().Add(s.config.SessionTTL),
		CreatedAt: time.Now(),
	}

	token, expiresAt, err := s.tokens.Generate(user, session.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	session.TokenHash = hashToken(token)

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	user.RecordSuccessfulLogin()
	_ = s.userRepo.Update(ctx, user)

	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"email", user.Email,
		"session_id", session.ID)

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// SessionActive reports whether the referenced session is still usable.
// Returning an error means the lookup itself failed, not that the session
// is invalid.
func (s *Service) SessionActive(ctx context.Context, sessionID string) (bool, error) {
	sid, err := id.Parse(sessionID)
	if err != nil {
		return false, nil
	}
	session, err := s.sessionRepo.GetByID(ctx, sid)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return session.IsValid(), nil
}

// Logout revokes the session referenced by the caller's token.
func (s *Service) Logout(ctx context.Context) error {
	user := appctx.GetUser(ctx)
	if user == nil {
		return apperror.NewUnauthorized("not authenticated")
	}
	sid, err := id.Parse(user.SessionID)
	if err != nil {
		return apperror.NewUnauthorized("invalid session")
	}
	if err := s.sessionRepo.Revoke(ctx, sid, "logout"); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	logger.Info(ctx, "user logged out", "user_id", user.UserID, "session_id", sid)
	return nil
}

// CurrentUser returns the authenticated user with roles and permissions.
func (s *Service) CurrentUser(ctx context.Context) (*User, error) {
	userCtx := appctx.GetUser(ctx)
	if userCtx == nil {
		return nil, apperror.NewUnauthorized("not authenticated")
	}
	uid, err := id.Parse(userCtx.UserID)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid user id")
	}
	return s.GetUserByID(ctx, uid)
}

// GetUserByID retrieves a user with roles and permissions loaded.
func (s *Service) GetUserByID(ctx context.Context, userID id.ID) (*User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewNotFound("user", userID.String())
	}

	roles, _ := s.userRepo.LoadRoles(ctx, user.ID)
	user.Roles = roles
	permissions, _ := s.userRepo.LoadPermissions(ctx, user.ID)
	user.Permissions = permissions

	return user, nil
}

// CreateUser creates a back-office user with the given roles.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	if req.Email == "" {
		return nil, apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	exists, err := s.userRepo.Exists(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("user", "email", req.Email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(req.Email, string(passwordHash))
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.IsAdmin = req.IsAdmin

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		for _, code := range req.RoleCodes {
			role, err := s.roleRepo.GetByCode(ctx, code)
			if err != nil {
				return apperror.NewNotFound("role", code)
			}
			if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
				return fmt.Errorf("assign role %s: %w", code, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user created", "user_id", user.ID, "email", user.Email)

	return user, nil
}

// ListUsers lists users with filtering.
func (s *Service) ListUsers(ctx context.Context, filter UserFilter) ([]User, int64, error) {
	return s.userRepo.List(ctx, filter)
}

// ListRoles lists all roles.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.roleRepo.List(ctx)
}

// ListPermissions lists all known permissions.
func (s *Service) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.roleRepo.ListPermissions(ctx)
}

// hashToken creates SHA256 hash of a token for at-rest storage.
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
