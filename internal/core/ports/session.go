package ports

import (
	"context"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
)

// SessionResult is returned by the sign-up and sign-in operations.
type SessionResult struct {
	Token    string           `json:"token"`
	Identity *domain.Identity `json:"identity"`
	// Role is empty after a federated sign-in that resolved no stored role
	// and carried no pending role; the caller must then prompt for a role
	// and call AssignRole.
	Role domain.Role `json:"role,omitempty"`
}

// SessionService tracks the authenticated identity and its role.
type SessionService interface {
	// Restore subscribes to the auth provider's identity-change stream and
	// keeps the session snapshot current. Call once at startup; the
	// returned handle cancels the subscription.
	Restore(ctx context.Context) (Unsubscribe, error)

	// Current returns the session snapshot. Loading is true until the
	// first provider callback has fired.
	Current() domain.Session

	// SignUp creates an identity and immediately persists its chosen role.
	SignUp(ctx context.Context, email, password string, role domain.Role) (*SessionResult, error)

	// SignInPassword authenticates an existing identity. The role store is
	// not touched; the role is whatever is already assigned.
	SignInPassword(ctx context.Context, email, password string) (*SessionResult, error)

	// FederatedURL starts the federated flow.
	FederatedURL(state string) string

	// SignInFederated completes the federated flow. A role already stored
	// for the identity wins over pendingRole; pendingRole is persisted only
	// when no role exists; with neither, the result's Role is empty.
	SignInFederated(ctx context.Context, code string, pendingRole domain.Role) (*SessionResult, error)

	// AssignRole persists the role for the current identity. Fails with
	// domain.ErrNoActiveSession when no identity is active.
	AssignRole(ctx context.Context, role domain.Role) error

	// AssignRoleTo persists the role for the given identity. Request-scoped
	// callers authenticate per request, so the target comes from the
	// caller's own claims, never from the process-wide session.
	AssignRoleTo(ctx context.Context, identityID string, role domain.Role) error

	// SignOut terminates the provider session; the next identity-change
	// callback clears identity and role.
	SignOut(ctx context.Context) error
}
