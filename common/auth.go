package common

import (
	"context"
	"time"

	"github.com/RassulYunussov/msclient/microservice"
	"github.com/google/uuid"
)

// Credential is a bearer token cached for an (enterprise, microservice) pair
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// Valid reports whether the credential can still be attached to a request.
// Zero ExpiresAt means the owner of the credential did not bound its lifetime.
func (c *Credential) Valid(now time.Time) bool {
	if c == nil || c.Token == "" {
		return false
	}
	return c.ExpiresAt.IsZero() || now.Before(c.ExpiresAt)
}

// LoginCredentials used to obtain a microservice token
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionData resolves the logged enterprise of a caller session.
// Returns 0 when the session is unknown.
type SessionData interface {
	GetLoggedEnterprise(ctx context.Context, correlationID uuid.UUID) (int64, error)
}

// AuthCache keeps one credential per (enterprise, microservice) pair.
// Implementations must be safe for concurrent use, AddOrUpdateAuth overwrites (last writer wins).
type AuthCache interface {
	// returns nil when there is no valid credential
	TryGetValidAuth(ctx context.Context, enterpriseID int64, m microservice.Microservice) (*Credential, error)
	AddOrUpdateAuth(ctx context.Context, enterpriseID int64, m microservice.Microservice, credential Credential) error
}

// Authenticator performs a login and returns the issued token
type Authenticator interface {
	Login(ctx context.Context, credentials LoginCredentials) (string, error)
}
