package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

// SessionManager implements ports.SessionService. It observes the auth
// provider's identity-change stream and resolves each identity's role from
// the role store, exposing the {identity, role, loading} snapshot.
//
// Role-store failures never surface from here: the role cache is
// best-effort, so unavailability is logged and treated as "no role".
type SessionManager struct {
	provider  ports.AuthProvider
	roles     ports.RoleStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger

	mu      sync.Mutex
	current domain.Session
}

func NewSessionManager(
	provider ports.AuthProvider,
	roles ports.RoleStore,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *SessionManager {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SessionManager{
		provider:  provider,
		roles:     roles,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		current:   domain.Session{Loading: true},
	}
}

// Restore subscribes to the provider's identity-change stream. The session
// stays in the loading state until the first callback fires.
func (s *SessionManager) Restore(ctx context.Context) (ports.Unsubscribe, error) {
	unsub := s.provider.Subscribe(func(identity *domain.Identity) {
		s.onAuthChange(ctx, identity)
	})
	return unsub, nil
}

func (s *SessionManager) onAuthChange(ctx context.Context, identity *domain.Identity) {
	var role domain.Role
	if identity != nil {
		role = s.lookupRole(ctx, identity.ID)
	}

	s.mu.Lock()
	prev := s.current.State()
	s.current = domain.Session{Identity: identity, Role: role}
	next := s.current.State()
	s.mu.Unlock()

	if prev != next {
		s.log.Debug().
			Str("from", string(prev)).
			Str("to", string(next)).
			Msg("session state changed")
	}
}

// lookupRole resolves the stored role for an identity, treating both an
// unset ID and an unreachable store as "no role".
func (s *SessionManager) lookupRole(ctx context.Context, identityID string) domain.Role {
	role, err := s.roles.Get(ctx, identityID)
	switch {
	case err == nil:
		return role
	case errors.Is(err, domain.ErrRoleNotFound):
		return ""
	default:
		s.log.Warn().Err(err).Str("identity_id", identityID).Msg("role lookup failed, treating as unassigned")
		return ""
	}
}

// Current returns the session snapshot.
func (s *SessionManager) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SignUp creates a new identity and immediately persists its chosen role.
func (s *SessionManager) SignUp(ctx context.Context, email, password string, role domain.Role) (*ports.SessionResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrCredential
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	identity, err := s.provider.CreateIdentity(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	s.persistRole(ctx, identity.ID, role)
	s.setSession(identity, role)

	token, err := s.generateToken(identity, role)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	s.log.Info().Str("identity_id", identity.ID).Str("role", string(role)).Msg("identity created")
	return &ports.SessionResult{Token: token, Identity: identity, Role: role}, nil
}

// SignInPassword authenticates an existing identity. The role store is not
// written; the role is whatever the identity-change callback resolved.
func (s *SessionManager) SignInPassword(ctx context.Context, email, password string) (*ports.SessionResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrCredential
	}

	identity, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	role := s.lookupRole(ctx, identity.ID)
	s.setSession(identity, role)

	token, err := s.generateToken(identity, role)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	return &ports.SessionResult{Token: token, Identity: identity, Role: role}, nil
}

// FederatedURL returns the third-party consent URL for the popup flow.
func (s *SessionManager) FederatedURL(state string) string {
	return s.provider.FederatedURL(state)
}

// SignInFederated completes the federated flow and resolves a role for the
// returned identity: an existing stored role wins over pendingRole;
// pendingRole is persisted only when no role exists; with neither, the
// returned role is empty and the caller must prompt for one.
func (s *SessionManager) SignInFederated(ctx context.Context, code string, pendingRole domain.Role) (*ports.SessionResult, error) {
	identity, err := s.provider.AuthenticateFederated(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("federated sign in: %w", err)
	}

	role := s.lookupRole(ctx, identity.ID)
	if role == "" && pendingRole != "" {
		if !pendingRole.Valid() {
			return nil, domain.ErrInvalidRole
		}
		s.persistRole(ctx, identity.ID, pendingRole)
		role = pendingRole
	}
	s.setSession(identity, role)

	token, err := s.generateToken(identity, role)
	if err != nil {
		return nil, fmt.Errorf("federated sign in: %w", err)
	}

	return &ports.SessionResult{Token: token, Identity: identity, Role: role}, nil
}

// AssignRole persists the role for the current identity.
func (s *SessionManager) AssignRole(ctx context.Context, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}

	s.mu.Lock()
	identity := s.current.Identity
	s.mu.Unlock()
	if identity == nil {
		return domain.ErrNoActiveSession
	}

	s.persistRole(ctx, identity.ID, role)
	s.setSession(identity, role)
	return nil
}

// AssignRoleTo persists the role for a specific identity. HTTP callers are
// authenticated per request, so the target identity comes from the request's
// claims; writing against the process-wide session would let one caller
// overwrite whichever identity happened to sign in last. The session
// snapshot is refreshed only when it belongs to the same identity.
func (s *SessionManager) AssignRoleTo(ctx context.Context, identityID string, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}
	if identityID == "" {
		return domain.ErrNoActiveSession
	}

	s.persistRole(ctx, identityID, role)

	s.mu.Lock()
	if s.current.Identity != nil && s.current.Identity.ID == identityID {
		s.current = domain.Session{Identity: s.current.Identity, Role: role}
	}
	s.mu.Unlock()
	return nil
}

// SignOut terminates the provider session.
func (s *SessionManager) SignOut(ctx context.Context) error {
	if err := s.provider.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.setSession(nil, "")
	return nil
}

// persistRole writes through to the role store, swallowing failures: the
// store is a non-critical cache and must never block an auth flow.
func (s *SessionManager) persistRole(ctx context.Context, identityID string, role domain.Role) {
	if err := s.roles.Set(ctx, identityID, role); err != nil {
		s.log.Warn().Err(err).Str("identity_id", identityID).Msg("failed to persist role")
	}
}

func (s *SessionManager) setSession(identity *domain.Identity, role domain.Role) {
	s.mu.Lock()
	s.current = domain.Session{Identity: identity, Role: role}
	s.mu.Unlock()
}

func (s *SessionManager) generateToken(identity *domain.Identity, role domain.Role) (string, error) {
	claims := jwt.MapClaims{
		"uid":   identity.ID,
		"email": identity.Email,
		"role":  string(role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
