package ports

import (
	"context"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
)

// Unsubscribe cancels a live subscription. Callers must invoke it on
// teardown so updates stop being delivered to a defunct consumer.
type Unsubscribe func()

// AuthProvider is the external authentication collaborator. Identities are
// created and destroyed by the provider; this system observes them through
// the change stream.
type AuthProvider interface {
	// CreateIdentity registers a new email/password identity and signs it
	// in. Rejections (duplicate email, weak password) surface as
	// domain.ErrCredential or domain.ErrIdentityExists.
	CreateIdentity(ctx context.Context, email, password string) (*domain.Identity, error)

	// Authenticate signs in an existing identity with email/password.
	Authenticate(ctx context.Context, email, password string) (*domain.Identity, error)

	// FederatedURL returns the third-party consent URL the client is sent
	// to; state round-trips through the redirect.
	FederatedURL(state string) string

	// AuthenticateFederated completes the federated flow by exchanging the
	// callback code for an identity. Fails with domain.ErrFederatedAuth.
	AuthenticateFederated(ctx context.Context, code string) (*domain.Identity, error)

	// Subscribe registers an identity-change callback. The callback fires
	// with the current identity immediately on subscription (nil when
	// anonymous) and again on every sign-in and sign-out.
	Subscribe(onChange func(*domain.Identity)) Unsubscribe

	// SignOut terminates the active session; subscribers observe a nil
	// identity.
	SignOut(ctx context.Context) error
}

// IdentityRepository persists provider identities.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity, passwordHash string) (*domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, string, error)
	// Upsert stores a federated identity keyed by its provider subject,
	// returning the stored record. No password hash is involved.
	Upsert(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
}
