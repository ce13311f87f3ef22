package authcache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/RassulYunussov/msclient/common"
	"github.com/RassulYunussov/msclient/microservice"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gotest.tools/v3/assert"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func TestMemoryCacheMiss(t *testing.T) {
	cache := NewMemoryCache(DefaultTTL)
	credential, err := cache.TryGetValidAuth(context.Background(), 42, microservice.DrugTrafficking)
	assert.NilError(t, err)
	assert.Assert(t, credential == nil)
}

func TestMemoryCacheAddOrUpdate(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(DefaultTTL)
	assert.NilError(t, cache.AddOrUpdateAuth(ctx, 42, microservice.DrugTrafficking, common.Credential{Token: "abc"}))
	assert.NilError(t, cache.AddOrUpdateAuth(ctx, 42, microservice.DrugTrafficking, common.Credential{Token: "def"}))
	credential, err := cache.TryGetValidAuth(ctx, 42, microservice.DrugTrafficking)
	assert.NilError(t, err)
	assert.Equal(t, "def", credential.Token)
	assert.Equal(t, 1, cache.Len())
}

func TestMemoryCacheKeysArePerPair(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(DefaultTTL)
	assert.NilError(t, cache.AddOrUpdateAuth(ctx, 42, microservice.None, common.Credential{Token: "none"}))
	credential, _ := cache.TryGetValidAuth(ctx, 42, microservice.DrugTrafficking)
	assert.Assert(t, credential == nil)
	credential, _ = cache.TryGetValidAuth(ctx, 43, microservice.None)
	assert.Assert(t, credential == nil)
	credential, _ = cache.TryGetValidAuth(ctx, 42, microservice.None)
	assert.Equal(t, "none", credential.Token)
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Now()}
	cache := NewMemoryCache(time.Minute)
	cache.now = c.Now
	assert.NilError(t, cache.AddOrUpdateAuth(ctx, 42, microservice.DrugTrafficking, common.Credential{Token: "abc"}))
	c.now = c.now.Add(59 * time.Second)
	credential, _ := cache.TryGetValidAuth(ctx, 42, microservice.DrugTrafficking)
	assert.Equal(t, "abc", credential.Token)
	c.now = c.now.Add(time.Second)
	credential, _ = cache.TryGetValidAuth(ctx, 42, microservice.DrugTrafficking)
	assert.Assert(t, credential == nil)
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCacheOwnExpiryWins(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Now()}
	cache := NewMemoryCache(time.Hour)
	cache.now = c.Now
	assert.NilError(t, cache.AddOrUpdateAuth(ctx, 42, microservice.DrugTrafficking, common.Credential{Token: "abc", ExpiresAt: c.now.Add(time.Minute)}))
	c.now = c.now.Add(2 * time.Minute)
	credential, _ := cache.TryGetValidAuth(ctx, 42, microservice.DrugTrafficking)
	assert.Assert(t, credential == nil)
}

func TestMemoryCacheEmptyTokenIsNotValid(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(DefaultTTL)
	assert.NilError(t, cache.AddOrUpdateAuth(ctx, 42, microservice.DrugTrafficking, common.Credential{}))
	credential, _ := cache.TryGetValidAuth(ctx, 42, microservice.DrugTrafficking)
	assert.Assert(t, credential == nil)
}

func TestMemoryCacheConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(DefaultTTL)
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = cache.AddOrUpdateAuth(ctx, 42, microservice.DrugTrafficking, common.Credential{Token: fmt.Sprintf("token-%d", i)})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = cache.TryGetValidAuth(ctx, 42, microservice.DrugTrafficking)
		}()
	}
	wg.Wait()
	credential, err := cache.TryGetValidAuth(ctx, 42, microservice.DrugTrafficking)
	assert.NilError(t, err)
	assert.Assert(t, credential != nil)
	assert.Equal(t, 1, cache.Len())
}

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisCache(rdb, ttl), mr
}

func TestRedisCacheAddOrUpdate(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, DefaultTTL)
	credential, err := cache.TryGetValidAuth(ctx, 42, microservice.DrugTrafficking)
	assert.NilError(t, err)
	assert.Assert(t, credential == nil)

	assert.NilError(t, cache.AddOrUpdateAuth(ctx, 42, microservice.DrugTrafficking, common.Credential{Token: "abc"}))
	assert.NilError(t, cache.AddOrUpdateAuth(ctx, 42, microservice.DrugTrafficking, common.Credential{Token: "def"}))
	credential, err = cache.TryGetValidAuth(ctx, 42, microservice.DrugTrafficking)
	assert.NilError(t, err)
	assert.Equal(t, "def", credential.Token)
	assert.Assert(t, mr.Exists("v1:auth:42:DrugTrafficking"))
	assert.Equal(t, DefaultTTL, mr.TTL("v1:auth:42:DrugTrafficking"))
}

func TestRedisCacheTTLExpiry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, time.Minute)
	assert.NilError(t, cache.AddOrUpdateAuth(ctx, 42, microservice.DrugTrafficking, common.Credential{Token: "abc"}))
	mr.FastForward(2 * time.Minute)
	credential, err := cache.TryGetValidAuth(ctx, 42, microservice.DrugTrafficking)
	assert.NilError(t, err)
	assert.Assert(t, credential == nil)
}

func TestRedisCacheExpiredCredentialIsDropped(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, time.Hour)
	assert.NilError(t, cache.AddOrUpdateAuth(ctx, 42, microservice.DrugTrafficking, common.Credential{Token: "abc"}))
	assert.NilError(t, cache.AddOrUpdateAuth(ctx, 42, microservice.DrugTrafficking, common.Credential{Token: "old", ExpiresAt: time.Now().Add(-time.Second)}))
	assert.Assert(t, !mr.Exists("v1:auth:42:DrugTrafficking"))
}

func TestRedisCacheCorruptValue(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, time.Hour)
	assert.NilError(t, mr.Set("v1:auth:42:DrugTrafficking", "{"))
	_, err := cache.TryGetValidAuth(ctx, 42, microservice.DrugTrafficking)
	assert.ErrorContains(t, err, "failed to unmarshal credential")
}
