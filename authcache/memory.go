package authcache

import (
	"context"
	"sync"
	"time"

	"github.com/RassulYunussov/msclient/common"
	"github.com/RassulYunussov/msclient/microservice"
)

// MemoryCache is a process local AuthCache
type MemoryCache struct {
	mu          sync.RWMutex
	credentials map[key]common.Credential
	ttl         time.Duration
	now         func() time.Time
}

// NewMemoryCache creates a cache, ttl applies to credentials without their own expiry
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		credentials: make(map[key]common.Credential),
		ttl:         ttl,
		now:         time.Now,
	}
}

func (c *MemoryCache) TryGetValidAuth(_ context.Context, enterpriseID int64, m microservice.Microservice) (*common.Credential, error) {
	k := key{enterpriseID: enterpriseID, microservice: m}
	c.mu.RLock()
	credential, ok := c.credentials[k]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !credential.Valid(c.now()) {
		c.mu.Lock()
		// a concurrent writer may have replaced it meanwhile
		if current, ok := c.credentials[k]; ok && !current.Valid(c.now()) {
			delete(c.credentials, k)
		}
		c.mu.Unlock()
		return nil, nil
	}
	return &credential, nil
}

func (c *MemoryCache) AddOrUpdateAuth(_ context.Context, enterpriseID int64, m microservice.Microservice, credential common.Credential) error {
	credential.ExpiresAt = expiry(credential, c.now(), c.ttl)
	c.mu.Lock()
	c.credentials[key{enterpriseID: enterpriseID, microservice: m}] = credential
	c.mu.Unlock()
	return nil
}

// Invalidate drops the credential of the pair
func (c *MemoryCache) Invalidate(_ context.Context, enterpriseID int64, m microservice.Microservice) error {
	c.mu.Lock()
	delete(c.credentials, key{enterpriseID: enterpriseID, microservice: m})
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.credentials)
}
