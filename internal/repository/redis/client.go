package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iamasit07/connect4-engine/internal/service/bot"
)

const keyPrefix = "c4:scores:"

// NewClient connects to Redis and pings it once.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", addr, err)
	}

	log.Println("[REDIS] Connected successfully")
	return client, nil
}

// ScoreCache stores root scores as JSON strings with a TTL.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScoreCache(client *redis.Client, ttl time.Duration) *ScoreCache {
	return &ScoreCache{client: client, ttl: ttl}
}

func (r *ScoreCache) Get(ctx context.Context, key string) ([]bot.ColumnScore, bool, error) {
	raw, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var scores []bot.ColumnScore
	if err := json.Unmarshal(raw, &scores); err != nil {
		// a corrupt entry is a miss, the next Set overwrites it
		log.Printf("[REDIS] Dropping undecodable entry %s: %v", key, err)
		return nil, false, nil
	}
	return scores, true, nil
}

func (r *ScoreCache) Set(ctx context.Context, key string, scores []bot.ColumnScore) error {
	raw, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+key, raw, r.ttl).Err()
}

// Close closes the Redis connection
func (r *ScoreCache) Close() error {
	return r.client.Close()
}
