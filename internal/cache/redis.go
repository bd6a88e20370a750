// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the Redis list (queue) name for game action logs.
const DefaultQueueName = "uno_actions"

// GameActionRecord holds the minimal info needed by a downstream consumer of the action feed.
type GameActionRecord struct {
	GameID        uuid.UUID              `json:"game_id"`
	ActionIndex   int                    `json:"action_index"`
	ActorPlayerID int                    `json:"actor_player_id"`
	ActionType    string                 `json:"action_type"`
	ActionPayload map[string]interface{} `json:"action_payload"`
	Timestamp     int64                  `json:"timestamp"`
}

// ActionPublisher accepts game action records for the feed.
type ActionPublisher interface {
	PublishGameAction(ctx context.Context, record GameActionRecord) error
	Close() error
}

// RedisPublisher pushes records onto a Redis list.
type RedisPublisher struct {
	Rdb       *redis.Client
	QueueName string
}

// ConnectRedis creates a client for addr/db and pings it.
func ConnectRedis(addr string, db int, queueName string) (*RedisPublisher, error) {
	if queueName == "" {
		queueName = DefaultQueueName
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &RedisPublisher{Rdb: rdb, QueueName: queueName}, nil
}

// PublishGameAction serializes the given record to JSON, then pushes it to the Redis queue.
func (p *RedisPublisher) PublishGameAction(ctx context.Context, record GameActionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal GameActionRecord: %w", err)
	}
	if err := p.Rdb.RPush(ctx, p.QueueName, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", p.QueueName, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.Rdb.Close()
}

// NopPublisher discards every record. Used when no Redis address is configured.
type NopPublisher struct{}

func (NopPublisher) PublishGameAction(context.Context, GameActionRecord) error { return nil }

func (NopPublisher) Close() error { return nil }

// RedisSource pops action records off the feed queue.
type RedisSource struct {
	Rdb       *redis.Client
	QueueName string
}

// NewRedisSource reads from the same queue a RedisPublisher writes to.
func NewRedisSource(p *RedisPublisher) *RedisSource {
	return &RedisSource{Rdb: p.Rdb, QueueName: p.QueueName}
}

// Pop blocks up to timeout for the next record. It returns (nil, nil) when the queue stayed empty.
func (s *RedisSource) Pop(ctx context.Context, timeout time.Duration) (*GameActionRecord, error) {
	res, err := s.Rdb.BLPop(ctx, timeout, s.QueueName).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("BLPop %s: %w", s.QueueName, err)
	}
	// res[0] is the queue name and res[1] the payload.
	if len(res) < 2 {
		return nil, nil
	}
	var record GameActionRecord
	if err := json.Unmarshal([]byte(res[1]), &record); err != nil {
		return nil, fmt.Errorf("invalid action record: %w", err)
	}
	return &record, nil
}
