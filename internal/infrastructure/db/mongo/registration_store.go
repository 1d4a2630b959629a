package mongo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

const registrationCollection = "registrations"

// RegistrationStore implements ports.RegistrationStore. The collection is
// append-only: registrations are never mutated or deleted.
type RegistrationStore struct {
	coll *mongo.Collection
	log  zerolog.Logger
}

func NewRegistrationStore(db *mongo.Database, log zerolog.Logger) *RegistrationStore {
	return &RegistrationStore{coll: db.Collection(registrationCollection), log: log}
}

// Add appends a registration and returns its generated ID.
func (s *RegistrationStore) Add(ctx context.Context, reg domain.Registration) (string, error) {
	reg.ID = primitive.NewObjectID().Hex()
	if _, err := s.coll.InsertOne(ctx, reg); err != nil {
		return "", fmt.Errorf("add registration: %w", err)
	}
	return reg.ID, nil
}

// Subscribe delivers the current collection immediately, then re-reads and
// redelivers after every change until cancelled.
func (s *RegistrationStore) Subscribe(ctx context.Context, onSnapshot func([]domain.Registration)) (ports.Unsubscribe, error) {
	subCtx, cancel := context.WithCancel(ctx)

	initial, err := s.list(subCtx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("registration subscribe: %w", err)
	}

	stream, err := s.coll.Watch(subCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("registration subscribe: watch: %w", err)
	}

	go func() {
		defer stream.Close(context.Background())

		onSnapshot(initial)
		for stream.Next(subCtx) {
			snapshot, err := s.list(subCtx)
			if err != nil {
				s.log.Warn().Err(err).Msg("registration snapshot re-read failed")
				continue
			}
			onSnapshot(snapshot)
		}
	}()

	return ports.Unsubscribe(cancel), nil
}

func (s *RegistrationStore) list(ctx context.Context) ([]domain.Registration, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var regs []domain.Registration
	if err := cursor.All(ctx, &regs); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}
	return regs, nil
}
