package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CredentialStorage durable key-value storage for the dashboard credential.
// It satisfies credential.Storage.
type CredentialStorage struct {
	rc *RedisClient
}

// NewCredentialStorage creates credential storage on top of a Redis client
func NewCredentialStorage(rc *RedisClient) *CredentialStorage {
	return &CredentialStorage{rc: rc}
}

// Get retrieves the raw value stored under key
func (s *CredentialStorage) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rc.GetClient().Get(ctx, s.rc.Key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores value under key; ttl 0 means no expiry
func (s *CredentialStorage) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.rc.GetClient().Set(ctx, s.rc.Key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *CredentialStorage) Delete(ctx context.Context, key string) error {
	if err := s.rc.GetClient().Del(ctx, s.rc.Key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
