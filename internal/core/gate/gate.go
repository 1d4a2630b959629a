// Package gate decides whether a role-restricted view may render for the
// current session. The check is advisory: it protects the presentation
// layer only, and a real deployment must additionally enforce ownership in
// the remote store's own rules.
package gate

import "github.com/ArnavTheExploit/EventSphere/internal/core/domain"

// Decision is the outcome of an access check.
type Decision int

const (
	// Placeholder: the session is still loading; render a waiting state.
	Placeholder Decision = iota
	// RedirectSignIn: no identity; send the caller to the sign-in entry.
	RedirectSignIn
	// RedirectHome: identity present but the required role does not match;
	// send the caller to the default landing view.
	RedirectHome
	// Render: the protected content may be shown.
	Render
)

func (d Decision) String() string {
	switch d {
	case Placeholder:
		return "placeholder"
	case RedirectSignIn:
		return "redirect_sign_in"
	case RedirectHome:
		return "redirect_home"
	default:
		return "render"
	}
}

// Decide applies the access rules in order: loading wins over everything,
// then a missing identity, then a role mismatch. requiredRole may be empty
// for views that only need authentication.
func Decide(s domain.Session, requiredRole domain.Role) Decision {
	if s.Loading {
		return Placeholder
	}
	if s.Identity == nil {
		return RedirectSignIn
	}
	if requiredRole != "" && s.Role != requiredRole {
		return RedirectHome
	}
	return Render
}
