package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

// RegistrationFeed joins the live registration collection to the merged
// event catalog. The join runs against whatever both sources currently
// hold, so it is idempotent and order-independent across the two
// subscriptions; a registration whose event has not reached the catalog yet
// is simply absent until the next recomputation.
type RegistrationFeed struct {
	store   ports.RegistrationStore
	catalog ports.Catalog
	log     zerolog.Logger

	mu   sync.RWMutex
	regs []domain.Registration
}

func NewRegistrationFeed(store ports.RegistrationStore, catalog ports.Catalog, log zerolog.Logger) *RegistrationFeed {
	return &RegistrationFeed{store: store, catalog: catalog, log: log}
}

// Start begins the long-lived registration subscription.
func (f *RegistrationFeed) Start(ctx context.Context) (ports.Unsubscribe, error) {
	unsub, err := f.store.Subscribe(ctx, f.apply)
	if err != nil {
		return nil, fmt.Errorf("registration subscribe: %w", err)
	}
	return unsub, nil
}

func (f *RegistrationFeed) apply(regs []domain.Registration) {
	f.mu.Lock()
	f.regs = regs
	f.mu.Unlock()
	f.log.Debug().Int("registrations", len(regs)).Msg("registration snapshot applied")
}

// ForOrganizer joins every cached registration to the catalog's current
// merged sequence by event ID, discarding registrations whose event is
// missing, and keeps only rows whose event is owned by the given identity.
func (f *RegistrationFeed) ForOrganizer(identityID string) ([]domain.RegistrationRow, int) {
	f.mu.RLock()
	regs := make([]domain.Registration, len(f.regs))
	copy(regs, f.regs)
	f.mu.RUnlock()

	events := f.catalog.Events()
	byID := make(map[string]domain.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	var rows []domain.RegistrationRow
	for _, reg := range regs {
		event, ok := byID[reg.EventID]
		if !ok || !event.OwnedBy(identityID) {
			continue
		}
		rows = append(rows, domain.RegistrationRow{Registration: reg, Event: event})
	}
	return rows, len(rows)
}

// RegistrationDedup abstracts the duplicate-submission store (Redis).
type RegistrationDedup interface {
	IsDuplicate(ctx context.Context, eventID, email string) (bool, error)
	Mark(ctx context.Context, eventID, email string) error
}

type registrationService struct {
	catalog ports.Catalog
	store   ports.RegistrationStore
	dedup   RegistrationDedup
	log     zerolog.Logger
}

// NewRegistrationService returns the submission pipeline: events are
// resolved against the merged catalog, duplicate submissions are dropped,
// and accepted registrations are appended to the remote collection.
func NewRegistrationService(
	catalog ports.Catalog,
	store ports.RegistrationStore,
	dedup RegistrationDedup,
	log zerolog.Logger,
) ports.RegistrationService {
	return &registrationService{catalog: catalog, store: store, dedup: dedup, log: log}
}

func (s *registrationService) Submit(ctx context.Context, in ports.RegistrationInput) error {
	event, err := s.catalog.Get(in.EventID)
	if err != nil {
		return fmt.Errorf("submit registration: %w", err)
	}

	isDup, err := s.dedup.IsDuplicate(ctx, in.EventID, in.Email)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", in.EventID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		return fmt.Errorf("submit registration: %w", domain.ErrDuplicateRegistration)
	}

	reg := domain.Registration{
		EventID:          in.EventID,
		UserID:           in.UserID,
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		CollegeOrCompany: in.CollegeOrCompany,
		YearOfStudy:      in.YearOfStudy,
		TeamMembers:      in.TeamMembers,
		RegisteredAt:     time.Now().UTC(),
	}

	id, err := s.store.Add(ctx, reg)
	if err != nil {
		return fmt.Errorf("submit registration: %w: %v", domain.ErrWriteRejected, err)
	}

	// Mark only after the write lands: a key set before a failed write
	// would reject every retry of a registration that was never stored.
	if markErr := s.dedup.Mark(ctx, in.EventID, in.Email); markErr != nil {
		s.log.Warn().Err(markErr).Str("event_id", in.EventID).Msg("failed to set dedup key")
	}

	s.log.Info().
		Str("registration_id", id).
		Str("event_id", in.EventID).
		Str("event_title", event.Title).
		Msg("registration recorded")

	return nil
}
