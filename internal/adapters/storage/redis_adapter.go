package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/queueaway/queueaway/internal/domain/providers"
	redisclient "github.com/queueaway/queueaway/internal/infrastructure/clients/redis"
)

// RedisAdapter implements the StorageProvider interface using Redis
type RedisAdapter struct {
	client *redisclient.Client
}

// NewRedisAdapter creates a new Redis storage adapter
func NewRedisAdapter(client *redisclient.Client) providers.StorageProvider {
	return &RedisAdapter{
		client: client,
	}
}

// Get retrieves a value from storage
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := a.client.Client().Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, providers.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from storage: %w", err)
	}
	return result, nil
}

// Set stores a value with expiration (0 = no expiration)
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	expiration := time.Duration(expirationSeconds) * time.Second
	if err := a.client.Client().Set(ctx, key, value, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set in storage: %w", err)
	}
	return nil
}

// Delete removes a value from storage
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Client().Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete from storage: %w", err)
	}
	return nil
}

// Exists checks if a key exists in storage
func (a *RedisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	result, err := a.client.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check existence in storage: %w", err)
	}
	return result > 0, nil
}
