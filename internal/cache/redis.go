package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is string cache on top of redis, keys are prefixed with service name
type RedisCache struct {
	client      *redis.Client
	serviceName string
}

// NewRedisCache creates new RedisCache instance
func NewRedisCache(addr, serviceName string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:        addr,
			DialTimeout: 2 * time.Second,
			ReadTimeout: time.Second,
		}),
		serviceName: serviceName,
	}
}

// Ping checks redis is reachable
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes redis client
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// Set stores value with ttl
func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Get returns value of key, missing key is empty string without error
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	return val, nil
}

// GenerateKey builds key as service:operation:key
func (r *RedisCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", r.serviceName, operation, key)
}
