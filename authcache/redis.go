package authcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RassulYunussov/msclient/common"
	"github.com/RassulYunussov/msclient/microservice"
	"github.com/redis/go-redis/v9"
)

// RedisCache shares credentials between replicas. Each pair is a single key
// written with SET, so concurrent updates never interleave.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	now    func() time.Time
}

type redisCredential struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, now: time.Now}
}

func (c *RedisCache) TryGetValidAuth(ctx context.Context, enterpriseID int64, m microservice.Microservice) (*common.Credential, error) {
	val, err := c.client.Get(ctx, key{enterpriseID: enterpriseID, microservice: m}.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	var stored redisCredential
	if err := json.Unmarshal(val, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credential: %w", err)
	}
	credential := common.Credential{Token: stored.Token, ExpiresAt: stored.ExpiresAt}
	if !credential.Valid(c.now()) {
		return nil, nil
	}
	return &credential, nil
}

func (c *RedisCache) AddOrUpdateAuth(ctx context.Context, enterpriseID int64, m microservice.Microservice, credential common.Credential) error {
	now := c.now()
	expiresAt := expiry(credential, now, c.ttl)
	var expiration time.Duration
	if !expiresAt.IsZero() {
		expiration = expiresAt.Sub(now)
		if expiration <= 0 {
			return c.Invalidate(ctx, enterpriseID, m)
		}
	}
	jsonValue, err := json.Marshal(redisCredential{Token: credential.Token, ExpiresAt: expiresAt})
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}
	if err := c.client.Set(ctx, key{enterpriseID: enterpriseID, microservice: m}.String(), jsonValue, expiration).Err(); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, enterpriseID int64, m microservice.Microservice) error {
	return c.client.Unlink(ctx, key{enterpriseID: enterpriseID, microservice: m}.String()).Err()
}
