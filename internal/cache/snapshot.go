// internal/cache/snapshot.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/game"
	"github.com/redis/go-redis/v9"
)

// ErrSnapshotMissing is returned when no cached snapshot exists for a session.
var ErrSnapshotMissing = errors.New("snapshot not cached")

const snapshotPrefix = "cattledrive:snapshot:"

// SnapshotKey is the Redis key holding the latest snapshot of a session.
func SnapshotKey(id uuid.UUID) string { return snapshotPrefix + id.String() }

// SnapshotCache keeps the most recent serialized state of each session, expiring
// entries after ttl. A zero ttl keeps them forever.
type SnapshotCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSnapshotCache(rdb redis.Cmdable, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{rdb: rdb, ttl: ttl}
}

// Put stores the current state of s, replacing any older snapshot.
func (c *SnapshotCache) Put(ctx context.Context, s *game.State) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", s.SessionID, err)
	}
	if err := c.rdb.Set(ctx, SnapshotKey(s.SessionID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache snapshot %s: %w", s.SessionID, err)
	}
	return nil
}

// Get rebuilds the cached state of a session.
func (c *SnapshotCache) Get(ctx context.Context, id uuid.UUID, opts ...game.Option) (*game.State, error) {
	data, err := c.rdb.Get(ctx, SnapshotKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotMissing, id)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", id, err)
	}
	return game.Unmarshal(data, opts...)
}

// Evict drops a session's snapshot.
func (c *SnapshotCache) Evict(ctx context.Context, id uuid.UUID) error {
	return c.rdb.Del(ctx, SnapshotKey(id)).Err()
}
