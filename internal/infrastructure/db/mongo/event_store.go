package mongo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

const eventCollection = "events"

// EventStore implements ports.EventStore on a MongoDB collection. Change
// streams stand in for the remote store's snapshot subscription: every
// change triggers a full re-read, delivered to the subscriber as one
// consistent snapshot.
type EventStore struct {
	coll *mongo.Collection
	log  zerolog.Logger
}

func NewEventStore(db *mongo.Database, log zerolog.Logger) *EventStore {
	return &EventStore{coll: db.Collection(eventCollection), log: log}
}

// Put writes the event document under its ID, creating or replacing it.
func (s *EventStore) Put(ctx context.Context, event domain.Event) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": event.ID}, event, opts); err != nil {
		return fmt.Errorf("put event: %w", err)
	}
	return nil
}

// Subscribe delivers the current collection immediately, then re-reads and
// redelivers after every change until ctx is cancelled or the returned
// handle is invoked. Snapshot callbacks run on a single goroutine.
func (s *EventStore) Subscribe(ctx context.Context, onSnapshot func([]domain.Event)) (ports.Unsubscribe, error) {
	subCtx, cancel := context.WithCancel(ctx)

	initial, err := s.list(subCtx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("event subscribe: %w", err)
	}

	stream, err := s.coll.Watch(subCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("event subscribe: watch: %w", err)
	}

	go func() {
		defer stream.Close(context.Background())

		onSnapshot(initial)
		for stream.Next(subCtx) {
			snapshot, err := s.list(subCtx)
			if err != nil {
				s.log.Warn().Err(err).Msg("event snapshot re-read failed")
				continue
			}
			onSnapshot(snapshot)
		}
	}()

	return ports.Unsubscribe(cancel), nil
}

func (s *EventStore) list(ctx context.Context) ([]domain.Event, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []domain.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}
