package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

type stubProvider struct {
	identities  map[string]*domain.Identity
	federated   map[string]*domain.Identity
	subscribers []func(*domain.Identity)
	current     *domain.Identity
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		identities: make(map[string]*domain.Identity),
		federated:  make(map[string]*domain.Identity),
	}
}

func (p *stubProvider) CreateIdentity(_ context.Context, email, _ string) (*domain.Identity, error) {
	if _, exists := p.identities[email]; exists {
		return nil, domain.ErrIdentityExists
	}
	identity := &domain.Identity{ID: "id-" + email, Email: email}
	p.identities[email] = identity
	p.publish(identity)
	return identity, nil
}

func (p *stubProvider) Authenticate(_ context.Context, email, _ string) (*domain.Identity, error) {
	identity, ok := p.identities[email]
	if !ok {
		return nil, domain.ErrCredential
	}
	p.publish(identity)
	return identity, nil
}

func (p *stubProvider) FederatedURL(state string) string {
	return "https://consent.example/authorize?state=" + state
}

func (p *stubProvider) AuthenticateFederated(_ context.Context, code string) (*domain.Identity, error) {
	identity, ok := p.federated[code]
	if !ok {
		return nil, domain.ErrFederatedAuth
	}
	p.publish(identity)
	return identity, nil
}

func (p *stubProvider) Subscribe(onChange func(*domain.Identity)) ports.Unsubscribe {
	p.subscribers = append(p.subscribers, onChange)
	onChange(p.current)
	return func() {}
}

func (p *stubProvider) SignOut(context.Context) error {
	p.publish(nil)
	return nil
}

func (p *stubProvider) publish(identity *domain.Identity) {
	p.current = identity
	for _, fn := range p.subscribers {
		fn(identity)
	}
}

type stubRoleStore struct {
	roles map[string]domain.Role
	err   error
	sets  int
}

func newStubRoleStore() *stubRoleStore {
	return &stubRoleStore{roles: make(map[string]domain.Role)}
}

func (s *stubRoleStore) Get(_ context.Context, identityID string) (domain.Role, error) {
	if s.err != nil {
		return "", s.err
	}
	role, ok := s.roles[identityID]
	if !ok {
		return "", domain.ErrRoleNotFound
	}
	return role, nil
}

func (s *stubRoleStore) Set(_ context.Context, identityID string, role domain.Role) error {
	if s.err != nil {
		return s.err
	}
	s.roles[identityID] = role
	s.sets++
	return nil
}

func newTestSessionManager(provider ports.AuthProvider, roles ports.RoleStore) *SessionManager {
	return NewSessionManager(provider, roles, "secret", time.Hour, zerolog.Nop())
}

func TestSessionManager_SignUp_PersistsRole(t *testing.T) {
	provider := newStubProvider()
	roles := newStubRoleStore()
	mgr := newTestSessionManager(provider, roles)

	result, err := mgr.SignUp(context.Background(), "alice@example.com", "pass12", domain.RoleOrganizer)
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if result.Role != domain.RoleOrganizer {
		t.Fatalf("unexpected role: %s", result.Role)
	}
	if got := roles.roles[result.Identity.ID]; got != domain.RoleOrganizer {
		t.Fatalf("role not persisted, got %q", got)
	}

	token, err := jwt.Parse(result.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["uid"] != result.Identity.ID {
		t.Fatalf("unexpected uid claim: %v", claims["uid"])
	}
	if claims["role"] != string(domain.RoleOrganizer) {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
}

func TestSessionManager_SignUp_Validation(t *testing.T) {
	mgr := newTestSessionManager(newStubProvider(), newStubRoleStore())

	if _, err := mgr.SignUp(context.Background(), "", "pass12", domain.RoleParticipant); !errors.Is(err, domain.ErrCredential) {
		t.Fatalf("expected ErrCredential, got %v", err)
	}
	if _, err := mgr.SignUp(context.Background(), "a@b.c", "pass12", "admin"); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestSessionManager_SignInPassword_ResolvesStoredRole(t *testing.T) {
	provider := newStubProvider()
	roles := newStubRoleStore()
	mgr := newTestSessionManager(provider, roles)

	if _, err := mgr.SignUp(context.Background(), "bob@example.com", "pass12", domain.RoleParticipant); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	writes := roles.sets

	result, err := mgr.SignInPassword(context.Background(), "bob@example.com", "pass12")
	if err != nil {
		t.Fatalf("SignInPassword returned error: %v", err)
	}
	if result.Role != domain.RoleParticipant {
		t.Fatalf("expected stored role to resolve, got %q", result.Role)
	}
	if roles.sets != writes {
		t.Fatalf("sign-in must not write the role store")
	}
}

func TestSessionManager_SignInPassword_BadCredential(t *testing.T) {
	mgr := newTestSessionManager(newStubProvider(), newStubRoleStore())

	if _, err := mgr.SignInPassword(context.Background(), "ghost@example.com", "nope12"); !errors.Is(err, domain.ErrCredential) {
		t.Fatalf("expected ErrCredential, got %v", err)
	}
}

func TestSessionManager_SignInFederated_StoredRoleWins(t *testing.T) {
	provider := newStubProvider()
	provider.federated["code-1"] = &domain.Identity{ID: "fed-1", Email: "carol@example.com"}
	roles := newStubRoleStore()
	roles.roles["fed-1"] = domain.RoleOrganizer
	mgr := newTestSessionManager(provider, roles)

	result, err := mgr.SignInFederated(context.Background(), "code-1", domain.RoleParticipant)
	if err != nil {
		t.Fatalf("SignInFederated returned error: %v", err)
	}
	if result.Role != domain.RoleOrganizer {
		t.Fatalf("stored role must win over the pending one, got %q", result.Role)
	}
	if roles.roles["fed-1"] != domain.RoleOrganizer {
		t.Fatalf("stored role was overwritten: %q", roles.roles["fed-1"])
	}
}

func TestSessionManager_SignInFederated_PendingRolePersisted(t *testing.T) {
	provider := newStubProvider()
	provider.federated["code-2"] = &domain.Identity{ID: "fed-2", Email: "dave@example.com"}
	roles := newStubRoleStore()
	mgr := newTestSessionManager(provider, roles)

	result, err := mgr.SignInFederated(context.Background(), "code-2", domain.RoleParticipant)
	if err != nil {
		t.Fatalf("SignInFederated returned error: %v", err)
	}
	if result.Role != domain.RoleParticipant {
		t.Fatalf("expected pending role, got %q", result.Role)
	}
	if roles.roles["fed-2"] != domain.RoleParticipant {
		t.Fatalf("pending role not persisted")
	}
}

func TestSessionManager_SignInFederated_NoRolePromptsCaller(t *testing.T) {
	provider := newStubProvider()
	provider.federated["code-3"] = &domain.Identity{ID: "fed-3", Email: "erin@example.com"}
	roles := newStubRoleStore()
	mgr := newTestSessionManager(provider, roles)

	result, err := mgr.SignInFederated(context.Background(), "code-3", "")
	if err != nil {
		t.Fatalf("SignInFederated returned error: %v", err)
	}
	if result.Role != "" {
		t.Fatalf("expected empty role, got %q", result.Role)
	}
	if roles.sets != 0 {
		t.Fatalf("nothing should be written without a pending role")
	}
}

func TestSessionManager_AssignRole_NoSession(t *testing.T) {
	mgr := newTestSessionManager(newStubProvider(), newStubRoleStore())

	if err := mgr.AssignRole(context.Background(), domain.RoleParticipant); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestSessionManager_AssignRoleTo_TargetsGivenIdentity(t *testing.T) {
	provider := newStubProvider()
	provider.identities["a@x.com"] = &domain.Identity{ID: "id-a", Email: "a@x.com"}
	roles := newStubRoleStore()
	mgr := newTestSessionManager(provider, roles)

	// A holds the process-wide session and has no role yet.
	if _, err := mgr.SignInPassword(context.Background(), "a@x.com", "pass12"); err != nil {
		t.Fatalf("SignInPassword returned error: %v", err)
	}

	// B's request assigns B's own role; A must be untouched.
	if err := mgr.AssignRoleTo(context.Background(), "id-b", domain.RoleOrganizer); err != nil {
		t.Fatalf("AssignRoleTo returned error: %v", err)
	}
	if roles.roles["id-b"] != domain.RoleOrganizer {
		t.Fatalf("role not persisted for the target identity, got %q", roles.roles["id-b"])
	}
	if got, ok := roles.roles["id-a"]; ok {
		t.Fatalf("another identity's role was written: %q", got)
	}
	if s := mgr.Current(); s.Role != "" {
		t.Fatalf("the session snapshot belongs to a different identity and must keep its role, got %q", s.Role)
	}
}

func TestSessionManager_AssignRoleTo_RefreshesOwnSession(t *testing.T) {
	provider := newStubProvider()
	provider.identities["a@x.com"] = &domain.Identity{ID: "id-a", Email: "a@x.com"}
	roles := newStubRoleStore()
	mgr := newTestSessionManager(provider, roles)

	if _, err := mgr.SignInPassword(context.Background(), "a@x.com", "pass12"); err != nil {
		t.Fatalf("SignInPassword returned error: %v", err)
	}

	if err := mgr.AssignRoleTo(context.Background(), "id-a", domain.RoleParticipant); err != nil {
		t.Fatalf("AssignRoleTo returned error: %v", err)
	}
	if s := mgr.Current(); s.Role != domain.RoleParticipant {
		t.Fatalf("own session must pick up the assigned role, got %q", s.Role)
	}
}

func TestSessionManager_AssignRoleTo_Validation(t *testing.T) {
	mgr := newTestSessionManager(newStubProvider(), newStubRoleStore())

	if err := mgr.AssignRoleTo(context.Background(), "id-a", "admin"); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if err := mgr.AssignRoleTo(context.Background(), "", domain.RoleParticipant); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestSessionManager_Restore_StateTransitions(t *testing.T) {
	provider := newStubProvider()
	roles := newStubRoleStore()
	mgr := newTestSessionManager(provider, roles)

	if state := mgr.Current().State(); state != domain.StateUnknown {
		t.Fatalf("expected unknown before restore, got %s", state)
	}

	unsub, err := mgr.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	defer unsub()

	// The provider fires the callback immediately with no identity.
	if state := mgr.Current().State(); state != domain.StateAnonymous {
		t.Fatalf("expected anonymous after restore, got %s", state)
	}

	roles.roles["id-f@g.h"] = domain.RoleParticipant
	if _, err := provider.Authenticate(context.Background(), "f@g.h", "x"); !errors.Is(err, domain.ErrCredential) {
		t.Fatalf("expected ErrCredential for unknown identity, got %v", err)
	}

	if _, err := provider.CreateIdentity(context.Background(), "f@g.h", "pass12"); err != nil {
		t.Fatalf("CreateIdentity returned error: %v", err)
	}
	if state := mgr.Current().State(); state != domain.StateAuthenticatedWithRole {
		t.Fatalf("expected authenticated_with_role, got %s", state)
	}

	if err := provider.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut returned error: %v", err)
	}
	if state := mgr.Current().State(); state != domain.StateAnonymous {
		t.Fatalf("expected anonymous after sign-out, got %s", state)
	}
}

func TestSessionManager_RoleStoreUnavailable(t *testing.T) {
	provider := newStubProvider()
	provider.identities["grace@example.com"] = &domain.Identity{ID: "id-grace", Email: "grace@example.com"}
	roles := newStubRoleStore()
	roles.err = domain.ErrStorageUnavailable
	mgr := newTestSessionManager(provider, roles)

	result, err := mgr.SignInPassword(context.Background(), "grace@example.com", "pass12")
	if err != nil {
		t.Fatalf("an unreachable role store must not block sign-in: %v", err)
	}
	if result.Role != "" {
		t.Fatalf("expected no role when the store is down, got %q", result.Role)
	}
	if state := mgr.Current().State(); state != domain.StateAuthenticatedNoRole {
		t.Fatalf("expected authenticated_no_role, got %s", state)
	}
}
