package adapter

import (
	"context"
	"errors"
	"time"

	"learnloop/internal/domain"

	"github.com/redis/go-redis/v9"
)

// redisCache adapts a go-redis client to the domain.Cache port.
type redisCache struct {
	client *redis.Client
}

// NewRedisCacheAdapter wraps a connected *redis.Client in the domain.Cache port.
func NewRedisCacheAdapter(client *redis.Client) domain.Cache {
	return &redisCache{client: client}
}

// Get returns the value stored under key, or domain.ErrCacheMiss when absent.
func (r *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *redisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Delete is a no-op for keys that do not exist.
func (r *redisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
