package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis slot.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Redis keeps the slot as a plain string key with no expiry.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis builds a client; no connection is made until the first call.
func NewRedis(opts RedisOptions) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &Redis{client: client, key: opts.Key}
}

// Get reads the key; redis.Nil reports ok=false.
func (r *Redis) Get(ctx context.Context) (int, bool, error) {
	text, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	n, err := parseScore(text)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// Set writes the key without a TTL.
func (r *Redis) Set(ctx context.Context, score int) error {
	text, err := formatScore(score)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, text, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

// Close closes the client pool.
func (r *Redis) Close() error { return r.client.Close() }
