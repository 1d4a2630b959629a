package ports

import (
	"context"
	"io"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
)

// EventStore is the remote event collection. The remote store is the single
// source of truth; local merged state is a derived projection.
type EventStore interface {
	// Subscribe delivers the full collection snapshot immediately and again
	// after every change, until the returned handle is invoked or ctx is
	// cancelled. Snapshots arrive on a single goroutine in arrival order.
	Subscribe(ctx context.Context, onSnapshot func([]domain.Event)) (Unsubscribe, error)

	// Put writes the event document under its ID, creating or replacing it.
	Put(ctx context.Context, event domain.Event) error
}

// RegistrationStore is the remote registration collection. Registrations
// are append-only.
type RegistrationStore interface {
	Subscribe(ctx context.Context, onSnapshot func([]domain.Registration)) (Unsubscribe, error)

	// Add appends a registration and returns its generated ID.
	Add(ctx context.Context, reg domain.Registration) (string, error)
}

// RoleStore maps identity IDs to their assigned role. It is a non-critical
// cache: Get reports an unset ID as domain.ErrRoleNotFound and an
// unreachable backing store as domain.ErrStorageUnavailable, leaving the
// fallback policy to the caller.
type RoleStore interface {
	Get(ctx context.Context, identityID string) (domain.Role, error)
	Set(ctx context.Context, identityID string, role domain.Role) error
}

// BlobStore holds uploaded event media (posters, brochures).
type BlobStore interface {
	Upload(ctx context.Context, path string, r io.Reader) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// URL returns the public path the stored blob is served from.
	URL(path string) string
}
