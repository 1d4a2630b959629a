package handler

import (
	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type signUpRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=participant organizer"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type assignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=participant organizer"`
}

type sessionResponse struct {
	Identity *domain.Identity `json:"identity"`
	Role     domain.Role      `json:"role,omitempty"`
	Loading  bool             `json:"loading"`
	State    string           `json:"state"`
}

type federatedStartResponse struct {
	URL string `json:"url"`
}

// federatedResult is the callback response. RoleRequired signals that the
// identity resolved no stored role and no pending role was supplied, so the
// client must prompt for one and call the assign-role endpoint.
type federatedResult struct {
	*ports.SessionResult
	RoleRequired bool `json:"role_required"`
}
