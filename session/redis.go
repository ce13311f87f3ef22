package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPattern = "v1:session:%s:enterprise"

// RedisStore keeps sessions in redis, so every replica resolves the same enterprise
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStore creates a store, ttl of 0 keeps sessions until removed
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(correlationID uuid.UUID) string {
	return fmt.Sprintf(keyPattern, correlationID.String())
}

func (s *RedisStore) SetLoggedEnterprise(ctx context.Context, correlationID uuid.UUID, enterpriseID int64) error {
	if err := s.client.Set(ctx, key(correlationID), enterpriseID, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, correlationID uuid.UUID) error {
	return s.client.Unlink(ctx, key(correlationID)).Err()
}

func (s *RedisStore) GetLoggedEnterprise(ctx context.Context, correlationID uuid.UUID) (int64, error) {
	if correlationID == uuid.Nil {
		return 0, nil
	}
	val, err := s.client.Get(ctx, key(correlationID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get session: %w", err)
	}
	enterpriseID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session %s: %w", correlationID, err)
	}
	return enterpriseID, nil
}
