package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sebastianmoiras/movie-FE/internal/navigator"
)

// DefaultRedisKeyPrefix namespaces session keys.
const DefaultRedisKeyPrefix = "movie-fe:session:"

// RedisSessionRepository stores sessions as JSON values with a Redis TTL.
type RedisSessionRepository struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisSessionRepository creates a repository on an existing client.
// An empty prefix selects DefaultRedisKeyPrefix.
func NewRedisSessionRepository(rdb *redis.Client, prefix string) *RedisSessionRepository {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisSessionRepository{rdb: rdb, prefix: prefix}
}

func (r *RedisSessionRepository) Get(ctx context.Context, id string) (navigator.Session, bool, error) {
	data, err := r.rdb.Get(ctx, r.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return navigator.Session{}, false, nil
	}
	if err != nil {
		return navigator.Session{}, false, fmt.Errorf("redis: failed to get session: %w", err)
	}

	var s navigator.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return navigator.Session{}, false, fmt.Errorf("redis: failed to decode session: %w", err)
	}
	return s, true, nil
}

func (r *RedisSessionRepository) Save(ctx context.Context, id string, s navigator.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("redis: failed to encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, r.prefix+id, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to save session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, r.prefix+id).Err(); err != nil {
		return fmt.Errorf("redis: failed to delete session: %w", err)
	}
	return nil
}
