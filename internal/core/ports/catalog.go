package ports

import (
	"context"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
)

// Catalog exposes the continuously merged event view: the fixed seed list
// overlaid with the live remote collection.
type Catalog interface {
	// Start begins the remote subscription. The merged view serves the
	// bare seed list until the first snapshot arrives.
	Start(ctx context.Context) (Unsubscribe, error)

	// Events returns the merged sequence: seed entries in their original
	// order, remote-only entries appended in arrival order.
	Events() []domain.Event

	// Get looks up one merged event by ID.
	Get(id string) (domain.Event, error)

	ByCategory(cat domain.Category) []domain.Event
	OwnedBy(identityID string) []domain.Event
	NotOwnedBy(identityID string) []domain.Event

	// Save writes the event to the remote store; the merged view picks it
	// up on the next snapshot.
	Save(ctx context.Context, event domain.Event) error

	// SyncAll pushes the entire merged view to the remote store.
	SyncAll(ctx context.Context) error

	// Remove drops the event from the local merged view only. The remote
	// document is left in place, so the event reappears on the next
	// snapshot.
	Remove(id string)
}

// RegistrationFeed exposes registrations joined to the merged catalog and
// scoped to an organizer's events.
type RegistrationFeed interface {
	Start(ctx context.Context) (Unsubscribe, error)

	// ForOrganizer returns the joined rows whose event is owned by the
	// given identity, plus the row count.
	ForOrganizer(identityID string) ([]domain.RegistrationRow, int)
}

// RegistrationInput carries a participant's submitted registration form.
type RegistrationInput struct {
	EventID          string
	UserID           string
	Name             string
	Email            string
	Phone            string
	CollegeOrCompany string
	YearOfStudy      string
	TeamMembers      string
}

// RegistrationService accepts and persists registration submissions.
type RegistrationService interface {
	Submit(ctx context.Context, in RegistrationInput) error
}
