package redis

import (
	"context"
	"fmt"

	"tailorshop/pkg/config"

	"github.com/go-redis/redis/v8"
)

// RedisClient Redis client wrapper
type RedisClient struct {
	client *redis.Client
	prefix string
}

// NewRedisClient creates Redis client and verifies the connection
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client, prefix: cfg.Prefix}, nil
}

// WrapClient wraps an existing client, e.g. one pointed at miniredis
func WrapClient(client *redis.Client, prefix string) *RedisClient {
	return &RedisClient{client: client, prefix: prefix}
}

// GetClient retrieves the underlying Redis client
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

// Key applies the configured namespace prefix
func (r *RedisClient) Key(key string) string {
	return r.prefix + key
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}
