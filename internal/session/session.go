package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	jwtlib "github.com/golang-jwt/jwt/v5"

	"ride-hail-client/internal/common/logger"
	"ride-hail-client/internal/domain/user"
)

// Storage key layout, shared with every client of this platform:
// auth-storage-<role>-token holds the raw token string and
// auth-storage-<role>-user the JSON-serialized user record. The role
// namespace keeps rider/driver/admin agents sharing one store isolated.
const storageKeyPrefix = "auth-storage-"

func tokenKey(role user.Role) string { return storageKeyPrefix + role.String() + "-token" }
func userKey(role user.Role) string  { return storageKeyPrefix + role.String() + "-user" }

var (
	ErrMissingToken = errors.New("token is required")
	ErrMissingUser  = errors.New("user is required")
)

// Session holds the authenticated identity for one agent process. The role is
// fixed at construction (a property of the deployment, not of the login); the
// token and user come and go with login/logout.
type Session struct {
	role  user.Role
	store Store
	log   *logger.Logger

	mu            sync.RWMutex
	token         string
	user          *user.User
	authenticated bool
}

// New creates an unauthenticated session bound to role and store. Call
// InitFromStorage to restore a persisted login.
func New(role user.Role, store Store, log *logger.Logger) *Session {
	return &Session{role: role, store: store, log: log}
}

// Login persists token+user under the role namespace and marks the session
// authenticated. No validation beyond presence of both arguments.
func (s *Session) Login(token string, u user.User) error {
	if token == "" {
		return ErrMissingToken
	}
	if u.ID == 0 {
		return ErrMissingUser
	}

	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := s.store.Set(tokenKey(s.role), token); err != nil {
		return err
	}
	if err := s.store.Set(userKey(s.role), string(raw)); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.user = &u
	s.authenticated = true
	s.mu.Unlock()
	return nil
}

// Logout clears the role-namespaced storage entries and resets the session to
// unauthenticated. The role is preserved.
func (s *Session) Logout() error {
	return s.purge()
}

// PurgeCredentials removes the stored token+user for the active role and
// resets in-memory state. The API client calls this on an authorization
// failure before firing its unauthorized hook.
func (s *Session) PurgeCredentials() error {
	return s.purge()
}

func (s *Session) purge() error {
	errToken := s.store.Delete(tokenKey(s.role))
	errUser := s.store.Delete(userKey(s.role))

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()

	return errors.Join(errToken, errUser)
}

// InitFromStorage restores a persisted session, called once at startup.
// Fails soft: a corrupt user record is deleted and the session stays
// unauthenticated; a restored user whose role disagrees with the configured
// role is invalid session state and is purged the same way.
func (s *Session) InitFromStorage(ctx context.Context) {
	token, okToken, errToken := s.store.Get(tokenKey(s.role))
	rawUser, okUser, errUser := s.store.Get(userKey(s.role))
	if errToken != nil || errUser != nil {
		s.log.Error(ctx, "session_restore_failed", "Failed to read persisted session", errors.Join(errToken, errUser), nil)
		return
	}
	if !okToken || !okUser {
		return
	}

	var u user.User
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
		s.log.Warn(ctx, "session_storage_corrupt", "Persisted user record is unparseable, clearing it", map[string]any{"role": s.role.String()})
		_ = s.purge()
		return
	}

	if u.Role != s.role {
		s.log.Warn(ctx, "session_role_mismatch", "Restored session belongs to another role, forcing logout",
			map[string]any{"configured_role": s.role.String(), "stored_role": u.Role.String()})
		_ = s.purge()
		return
	}

	if info, err := InspectToken(token); err == nil && info.Expired(time.Now()) {
		s.log.Warn(ctx, "session_token_expired", "Restored token is past its expiry; the server will reject it", map[string]any{"expired_at": info.ExpiresAt})
	}

	s.mu.Lock()
	s.token = token
	s.user = &u
	s.authenticated = true
	s.mu.Unlock()

	s.log.Info(ctx, "session_restored", "Session restored from storage", map[string]any{"user_id": u.ID, "role": s.role.String()})
}

// Token returns the current bearer token, empty when unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the authenticated user, if any.
func (s *Session) User() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return user.User{}, false
	}
	return *s.user, true
}

// Role returns the configured role. Constant for the process lifetime.
func (s *Session) Role() user.Role {
	return s.role
}

// Authenticated reports whether a login is active.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// ----- Token introspection -----

// TokenInfo is what the client can read out of its bearer token without the
// signing secret. Informational only; the server is the authority.
type TokenInfo struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim is in the past at now.
// Tokens without an exp claim never report expired.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && t.ExpiresAt.Before(now)
}

// InspectToken parses token claims without verifying the signature.
func InspectToken(token string) (*TokenInfo, error) {
	claims := jwtlib.MapClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if role, ok := claims["role"].(string); ok {
		info.Role = role
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
