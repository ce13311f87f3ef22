// Package authcache keeps microservice credentials per (enterprise, microservice) pair.
package authcache

import (
	"fmt"
	"time"

	"github.com/RassulYunussov/msclient/common"
	"github.com/RassulYunussov/msclient/microservice"
)

const (
	CacheVersion = "v1"
	// enterprise id, microservice name
	AuthKeyPattern = CacheVersion + ":auth:%d:%s"

	DefaultTTL = 30 * time.Minute
)

type key struct {
	enterpriseID int64
	microservice microservice.Microservice
}

func (k key) String() string {
	return fmt.Sprintf(AuthKeyPattern, k.enterpriseID, k.microservice)
}

// expiry bounds a credential by the cache ttl when its own lifetime is unknown
func expiry(credential common.Credential, now time.Time, ttl time.Duration) time.Time {
	if credential.ExpiresAt.IsZero() && ttl > 0 {
		return now.Add(ttl)
	}
	return credential.ExpiresAt
}
