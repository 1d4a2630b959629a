package domain

import "errors"

// Credential and session failures surface verbatim to sign-in/sign-up forms;
// storage failures are best-effort-swallowed by the role cache's consumers.
var (
	ErrCredential            = errors.New("invalid credentials")
	ErrIdentityExists        = errors.New("identity already exists")
	ErrIdentityNotFound      = errors.New("identity not found")
	ErrFederatedAuth         = errors.New("federated sign-in failed")
	ErrNoActiveSession       = errors.New("no active session")
	ErrRoleNotFound          = errors.New("no role assigned")
	ErrInvalidRole           = errors.New("invalid role")
	ErrStorageUnavailable    = errors.New("role storage unavailable")
	ErrEventNotFound         = errors.New("event not found")
	ErrBlobNotFound          = errors.New("media not found")
	ErrForbidden             = errors.New("access forbidden")
	ErrWriteRejected         = errors.New("remote write rejected")
	ErrDuplicateRegistration = errors.New("already registered for this event")
)
