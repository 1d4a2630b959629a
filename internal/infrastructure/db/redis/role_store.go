package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
)

// RoleStore maps identity IDs to their assigned role, backed by Redis.
// Key format: role:<identity_id>
//
// The mapping is a non-critical cache: an unreachable or corrupted backing
// store is reported as domain.ErrStorageUnavailable and callers fall back
// to "no role assigned". Concurrent writers race last-writer-wins, which is
// acceptable since a role is set at most once in practice.
type RoleStore struct {
	client *redis.Client
}

func NewRoleStore(client *redis.Client) *RoleStore {
	return &RoleStore{client: client}
}

// Get returns the role stored for the identity. Unset IDs report
// domain.ErrRoleNotFound; a corrupted value is treated as unset.
func (s *RoleStore) Get(ctx context.Context, identityID string) (domain.Role, error) {
	val, err := s.client.Get(ctx, s.key(identityID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrRoleNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	role := domain.Role(val)
	if !role.Valid() {
		return "", domain.ErrRoleNotFound
	}
	return role, nil
}

// Set persists the role for the identity. Roles never expire.
func (s *RoleStore) Set(ctx context.Context, identityID string, role domain.Role) error {
	if err := s.client.Set(ctx, s.key(identityID), string(role), 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *RoleStore) key(identityID string) string {
	return "role:" + identityID
}
