package redis

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RegistrationDedup guards against double registration submissions.
// Key format: reg:<event_id>:<email>
//
// Registrations are never deleted, so dedup keys carry no TTL.
type RegistrationDedup struct {
	client *redis.Client
}

// NewRegistrationDedup creates a RegistrationDedup wrapping the given Redis client.
func NewRegistrationDedup(client *redis.Client) *RegistrationDedup {
	return &RegistrationDedup{client: client}
}

// IsDuplicate reports whether this email already registered for the event.
func (d *RegistrationDedup) IsDuplicate(ctx context.Context, eventID, email string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(eventID, email)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this email has registered for the event.
func (d *RegistrationDedup) Mark(ctx context.Context, eventID, email string) error {
	return d.client.Set(ctx, d.key(eventID, email), "1", 0).Err()
}

func (d *RegistrationDedup) key(eventID, email string) string {
	return fmt.Sprintf("reg:%s:%s", eventID, strings.ToLower(email))
}
