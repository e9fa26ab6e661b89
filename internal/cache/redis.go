// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/config"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client for the configured address and database and pings it.
func Connect(ctx context.Context, env config.Env) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: env.RedisAddr,
		DB:   env.RedisDB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", env.RedisAddr, err)
	}
	return rdb, nil
}

// Publisher pushes accepted game changes onto the historian queue. It satisfies
// game.Recorder.
type Publisher struct {
	rdb   redis.Cmdable
	queue string
}

// NewPublisher returns a publisher writing to the named Redis list.
func NewPublisher(rdb redis.Cmdable, queue string) *Publisher {
	return &Publisher{rdb: rdb, queue: queue}
}

// Queue is the Redis list the publisher writes to.
func (p *Publisher) Queue() string { return p.queue }

// Record serializes rec to JSON and appends it to the queue.
func (p *Publisher) Record(ctx context.Context, rec models.ActionRecord) error {
	data, err := EncodeRecord(rec)
	if err != nil {
		return err
	}
	if err := p.rdb.RPush(ctx, p.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", p.queue, err)
	}
	return nil
}

// EncodeRecord is the queue wire form of an action record.
func EncodeRecord(rec models.ActionRecord) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ActionRecord: %w", err)
	}
	return data, nil
}

// DecodeRecord parses a queue payload. Records without a session id are rejected.
func DecodeRecord(data []byte) (models.ActionRecord, error) {
	var rec models.ActionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.ActionRecord{}, fmt.Errorf("invalid action record: %w", err)
	}
	if rec.SessionID == uuid.Nil {
		return models.ActionRecord{}, fmt.Errorf("invalid action record: missing session_id")
	}
	return rec, nil
}
