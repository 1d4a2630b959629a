package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
)

const identityCollection = "identities"

// IdentityRepository persists auth-provider identities. Password accounts
// are keyed by email; federated accounts are keyed by the provider subject.
type IdentityRepository struct {
	coll *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{coll: db.Collection(identityCollection)}
}

// EnsureIndexes creates the unique email index that backs Create's
// duplicate detection. Concurrent sign-ups for one email can both pass the
// pre-check; the index makes the second insert fail, which the
// IsDuplicateKeyError branch reports as ErrIdentityExists. The partial
// filter exempts documents without an email.
func (r *IdentityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"email": bson.M{"$gt": ""}}),
	})
	if err != nil {
		return fmt.Errorf("identity indexes: %w", err)
	}
	return nil
}

type mongoIdentity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	DisplayName  string             `bson:"display_name,omitempty"`
	PasswordHash string             `bson:"password_hash,omitempty"`
	Subject      string             `bson:"subject,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *IdentityRepository) Create(ctx context.Context, identity *domain.Identity, passwordHash string) (*domain.Identity, error) {
	if _, _, err := r.FindByEmail(ctx, identity.Email); err == nil {
		return nil, domain.ErrIdentityExists
	}

	doc := mongoIdentity{
		Email:        identity.Email,
		DisplayName:  identity.DisplayName,
		PasswordHash: passwordHash,
		CreatedAt:    identity.CreatedAt.Unix(),
		UpdatedAt:    identity.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrIdentityExists
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	created := *identity
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*domain.Identity, string, error) {
	var mi mongoIdentity
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mi); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, "", domain.ErrIdentityNotFound
		}
		return nil, "", fmt.Errorf("find identity: %w", err)
	}
	return toIdentity(mi), mi.PasswordHash, nil
}

// Upsert stores a federated identity keyed by its provider subject and
// returns the stored record.
func (r *IdentityRepository) Upsert(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	now := time.Now().UTC()
	filter := bson.M{"subject": identity.ID}
	update := bson.M{
		"$set": bson.M{
			"email":        identity.Email,
			"display_name": identity.DisplayName,
			"updated_at":   now.Unix(),
		},
		"$setOnInsert": bson.M{
			"subject":    identity.ID,
			"created_at": now.Unix(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var mi mongoIdentity
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mi); err != nil {
		return nil, fmt.Errorf("upsert identity: %w", err)
	}
	return toIdentity(mi), nil
}

func toIdentity(mi mongoIdentity) *domain.Identity {
	return &domain.Identity{
		ID:          mi.ID.Hex(),
		Email:       mi.Email,
		DisplayName: mi.DisplayName,
		CreatedAt:   unixToTime(mi.CreatedAt),
		UpdatedAt:   unixToTime(mi.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
