package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yourusername/guardrail/core"
)

const keyPrefix = "guardrail:window:"

// maxUpdateRetries bounds optimistic transaction retries when another
// replica changes the same window concurrently
const maxUpdateRetries = 20

// RedisStore shares throttle window state between replicas through Redis
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration // How long an idle window survives in Redis
}

// Ensure RedisStore implements Store interface
var _ Store = (*RedisStore)(nil)

// RedisConfig for creating a Redis store
type RedisConfig struct {
	Addr     string        // Redis address (e.g., "localhost:6379")
	Password string        // Redis password (empty for no auth)
	DB       int           // Redis database number
	TTL      time.Duration // TTL for window states (default: 1 minute)
}

// NewRedisStore creates a new Redis-backed store
func NewRedisStore(config RedisConfig) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ttl := config.TTL
	if ttl == 0 {
		// Windows are short-lived; anything older is reset anyway
		ttl = time.Minute
	}

	return &RedisStore{
		client: client,
		ctx:    context.Background(),
		ttl:    ttl,
	}
}

// Get retrieves the window state for a given key.
// Lookup or decode failures are reported as a missing window.
func (s *RedisStore) Get(key string) *core.WindowState {
	state, _ := load(s.ctx, s.client, keyPrefix+key)
	return state
}

// getter is satisfied by both *redis.Client and *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// load reads and decodes one window. A missing or undecodable value is a
// nil state; only transport errors are returned.
func load(ctx context.Context, c getter, redisKey string) (*core.WindowState, error) {
	val, err := c.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state core.WindowState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, nil
	}

	return &state, nil
}

// Set stores the window state for a given key
func (s *RedisStore) Set(key string, state *core.WindowState) {
	data, err := json.Marshal(state)
	if err != nil {
		return
	}

	s.client.Set(s.ctx, keyPrefix+key, data, s.ttl)
}

// Update applies fn inside a WATCH/MULTI transaction on the window key,
// retrying when another client wrote the key in between. When Redis is
// unreachable fn still runs once against a nil state and nothing is stored.
func (s *RedisStore) Update(key string, fn UpdateFunc) {
	redisKey := keyPrefix + key
	called := false

	txf := func(tx *redis.Tx) error {
		current, err := load(s.ctx, tx, redisKey)
		if err != nil {
			return err
		}

		next := fn(current)
		called = true

		data, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(s.ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(s.ctx, redisKey, data, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(s.ctx, txf, redisKey)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}

	if !called {
		fn(nil)
	}
}

// Delete removes the window state for a given key
func (s *RedisStore) Delete(key string) {
	s.client.Del(s.ctx, keyPrefix+key)
}

// Clear removes all guardrail window keys from Redis
func (s *RedisStore) Clear() {
	iter := s.client.Scan(s.ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(s.ctx) {
		s.client.Del(s.ctx, iter.Val())
	}
}

// Ping checks if Redis connection is alive
func (s *RedisStore) Ping() error {
	return s.client.Ping(s.ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
