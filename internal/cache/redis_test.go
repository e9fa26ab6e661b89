// internal/cache/redis_test.go
package cache

import (
	"context"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/config"
	"github.com/jason-s-yu/cattledrive/internal/game"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient connects to a local Redis, skipping the test when none is running.
func testClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb, err := Connect(context.Background(), config.Env{RedisAddr: addr})
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestDecodeRecord(t *testing.T) {
	rec := models.ActionRecord{
		SessionID:     uuid.New(),
		Version:       4,
		ActorID:       uuid.New(),
		ActionType:    "move",
		ActionPayload: map[string]interface{}{"target_location": 3.0},
		Timestamp:     1700000000000,
	}
	data, err := EncodeRecord(rec)
	require.NoError(t, err)

	got, err := DecodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = DecodeRecord([]byte(`{"version": 2}`))
	assert.Error(t, err, "records without a session are dropped")
	_, err = DecodeRecord([]byte(`not json`))
	assert.Error(t, err)
}

func TestSnapshotKey(t *testing.T) {
	id := uuid.MustParse("8d5e9a3c-1f2b-4c6d-9e0f-123456789abc")
	assert.Equal(t, "cattledrive:snapshot:8d5e9a3c-1f2b-4c6d-9e0f-123456789abc", SnapshotKey(id))
}

func TestPublisherPushesToQueue(t *testing.T) {
	rdb := testClient(t)
	ctx := context.Background()
	queue := "cattledrive_test_" + uuid.NewString()
	t.Cleanup(func() { rdb.Del(ctx, queue) })

	pub := NewPublisher(rdb, queue)
	rec := models.ActionRecord{SessionID: uuid.New(), Version: 2, ActionType: "game_start"}
	require.NoError(t, pub.Record(ctx, rec))

	res, err := rdb.BLPop(ctx, time.Second, queue).Result()
	require.NoError(t, err)
	require.Len(t, res, 2)
	got, err := DecodeRecord([]byte(res[1]))
	require.NoError(t, err)
	assert.Equal(t, rec.SessionID, got.SessionID)
	assert.Equal(t, 2, got.Version)
}

func TestSnapshotCacheRoundTrip(t *testing.T) {
	rdb := testClient(t)
	ctx := context.Background()

	s, err := game.New(config.MustDefaultRules(), game.WithRand(rand.New(rand.NewSource(3))))
	require.NoError(t, err)
	_, err = s.AddPlayer("u", "rider")
	require.NoError(t, err)

	c := NewSnapshotCache(rdb, time.Minute)
	t.Cleanup(func() { _ = c.Evict(ctx, s.SessionID) })
	require.NoError(t, c.Put(ctx, s))

	got, err := c.Get(ctx, s.SessionID)
	require.NoError(t, err)
	assert.Equal(t, s.Version, got.Version)
	require.Len(t, got.Players, 1)
	assert.Equal(t, s.Players[0].ID, got.Players[0].ID)

	ttl, err := rdb.TTL(ctx, SnapshotKey(s.SessionID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Evict(ctx, s.SessionID))
	_, err = c.Get(ctx, s.SessionID)
	assert.ErrorIs(t, err, ErrSnapshotMissing)
}
