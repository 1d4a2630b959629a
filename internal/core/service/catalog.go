package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

// Catalog maintains the merged event view: a fixed seed list overlaid with
// the live remote collection. Every remote snapshot is folded from scratch
// over the seed, so seed-originated IDs keep their original relative
// position and remote-only records append in arrival order.
type Catalog struct {
	store ports.EventStore
	seed  []domain.Event
	log   zerolog.Logger

	mu       sync.RWMutex
	merged   []domain.Event
	watchers []func()
}

func NewCatalog(store ports.EventStore, seed []domain.Event, log zerolog.Logger) *Catalog {
	c := &Catalog{store: store, seed: seed, log: log}
	c.merged = mergeSnapshot(seed, nil)
	return c
}

// Start begins the long-lived remote subscription. The merged view serves
// the bare seed list until the first snapshot arrives.
func (c *Catalog) Start(ctx context.Context) (ports.Unsubscribe, error) {
	unsub, err := c.store.Subscribe(ctx, c.apply)
	if err != nil {
		return nil, fmt.Errorf("catalog subscribe: %w", err)
	}
	return unsub, nil
}

// OnChange registers a callback invoked after every fold of a remote
// snapshot into the merged view.
func (c *Catalog) OnChange(fn func()) {
	c.mu.Lock()
	c.watchers = append(c.watchers, fn)
	c.mu.Unlock()
}

func (c *Catalog) apply(remote []domain.Event) {
	c.mu.Lock()
	c.merged = mergeSnapshot(c.seed, remote)
	watchers := c.watchers
	size := len(c.merged)
	c.mu.Unlock()

	c.log.Debug().Int("remote", len(remote)).Int("merged", size).Msg("event snapshot folded")
	for _, fn := range watchers {
		fn()
	}
}

// mergeSnapshot overlays remote records on the seed list: a remote record
// sharing a seed ID replaces it in place, any other record is appended.
func mergeSnapshot(seed, remote []domain.Event) []domain.Event {
	merged := make([]domain.Event, len(seed), len(seed)+len(remote))
	copy(merged, seed)

	for _, re := range remote {
		replaced := false
		for i := range merged {
			if merged[i].ID == re.ID {
				merged[i] = re
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, re)
		}
	}
	return merged
}

// Events returns the merged sequence.
func (c *Catalog) Events() []domain.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Event, len(c.merged))
	copy(out, c.merged)
	return out
}

// Get looks up one merged event by ID.
func (c *Catalog) Get(id string) (domain.Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.merged {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Event{}, domain.ErrEventNotFound
}

// ByCategory filters the merged view by exact category match.
func (c *Catalog) ByCategory(cat domain.Category) []domain.Event {
	return c.filter(func(e domain.Event) bool { return e.Category == cat })
}

// OwnedBy returns the events created by the given identity.
func (c *Catalog) OwnedBy(identityID string) []domain.Event {
	return c.filter(func(e domain.Event) bool { return e.OwnedBy(identityID) })
}

// NotOwnedBy returns the complement of OwnedBy over the merged view.
func (c *Catalog) NotOwnedBy(identityID string) []domain.Event {
	return c.filter(func(e domain.Event) bool { return !e.OwnedBy(identityID) })
}

func (c *Catalog) filter(keep func(domain.Event) bool) []domain.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []domain.Event
	for _, e := range c.merged {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Save writes the event to the remote store. The merged view is not
// touched here; it catches up on the next snapshot.
func (c *Catalog) Save(ctx context.Context, event domain.Event) error {
	if err := c.store.Put(ctx, event); err != nil {
		return fmt.Errorf("save event: %w: %v", domain.ErrWriteRejected, err)
	}
	c.log.Info().Str("event_id", event.ID).Str("created_by", event.CreatedByUID).Msg("event saved")
	return nil
}

// SyncAll pushes the entire merged view to the remote store.
func (c *Catalog) SyncAll(ctx context.Context) error {
	for _, e := range c.Events() {
		if err := c.store.Put(ctx, e); err != nil {
			return fmt.Errorf("sync event %s: %w: %v", e.ID, domain.ErrWriteRejected, err)
		}
	}
	return nil
}

// Remove drops the event from the local merged view only. The remote
// document stays, so the event reappears on the next snapshot.
func (c *Catalog) Remove(id string) {
	c.mu.Lock()
	for i, e := range c.merged {
		if e.ID == id {
			c.merged = append(c.merged[:i], c.merged[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	c.log.Warn().Str("event_id", id).Msg("event removed locally only; it will reappear on the next remote snapshot")
}
