package domain

import "time"

// Role is the capability designation assigned to an identity. An identity
// holds at most one role, picked once during account setup.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleOrganizer   Role = "organizer"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleParticipant || r == RoleOrganizer
}

// Identity models an authenticated principal. The auth provider owns its
// lifecycle; this system only observes it.
type Identity struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Session is the snapshot the session manager exposes to consumers.
// Loading is true only until the auth provider delivers its first
// identity-change callback.
type Session struct {
	Identity *Identity
	Role     Role
	Loading  bool
}

// SessionState is the session manager's observable state machine position.
type SessionState string

const (
	StateUnknown               SessionState = "unknown"
	StateAnonymous             SessionState = "anonymous"
	StateAuthenticatedNoRole   SessionState = "authenticated_no_role"
	StateAuthenticatedWithRole SessionState = "authenticated_with_role"
)

// State derives the state machine position from the snapshot.
func (s Session) State() SessionState {
	switch {
	case s.Loading:
		return StateUnknown
	case s.Identity == nil:
		return StateAnonymous
	case s.Role == "":
		return StateAuthenticatedNoRole
	default:
		return StateAuthenticatedWithRole
	}
}
