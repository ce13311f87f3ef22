// Package config loads msclient settings from environment variables.
//
// Environment Variables:
//
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - HTTP_TIMEOUT: outgoing request timeout (default: 10s)
//   - RETRY_MAX: retries of 5xx/network failures, 0 disables (default: 2)
//   - RETRY_BACKOFF: base backoff between retries (default: 100ms)
//   - CB_MAX_REQUESTS, CB_CONSECUTIVE_FAILURES, CB_INTERVAL, CB_TIMEOUT: circuit breaker,
//     disabled when CB_CONSECUTIVE_FAILURES is 0 (default: 1, 5, 60s, 30s)
//   - AUTH_BASE_URL: authentication service url, empty disables microservice auth
//   - AUTH_LOGIN_PATH: login route (default: /api/login)
//   - AUTH_EMAIL, AUTH_PASSWORD: login credentials, required with AUTH_BASE_URL
//   - AUTH_CACHE_TTL: lifetime of tokens without an exp claim (default: 30m)
//   - REDIS_ADDRESS, REDIS_PASSWORD, REDIS_DB: shared auth cache and session store,
//     in-memory stores are used when REDIS_ADDRESS is empty
//   - SESSION_TTL: lifetime of sessions stored in redis, 0 keeps them (default: 0)
//   - MICROSERVICE_DRUGTRAFFICKING_URL: base url of the DrugTrafficking microservice
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/RassulYunussov/msclient/common"
	"github.com/RassulYunussov/msclient/microservice"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string

	HTTPTimeout  time.Duration
	RetryMax     uint8
	RetryBackoff time.Duration

	CircuitBreakerMaxRequests         uint32
	CircuitBreakerConsecutiveFailures uint32
	CircuitBreakerInterval            time.Duration
	CircuitBreakerTimeout             time.Duration

	AuthBaseURL      string
	AuthLoginPath    string
	AuthCredentials  common.LoginCredentials
	AuthCacheTTL     time.Duration
	SessionTTL       time.Duration
	RedisAddress     string
	RedisPassword    string
	RedisDB          int
	MicroserviceURLs map[microservice.Microservice]string
}

// Load reads the environment, malformed values are reported together
func Load() (*Config, error) {
	var errs []error
	c := &Config{
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		AuthBaseURL:     getEnv("AUTH_BASE_URL", ""),
		AuthLoginPath:   getEnv("AUTH_LOGIN_PATH", "/api/login"),
		AuthCredentials: common.LoginCredentials{Email: getEnv("AUTH_EMAIL", ""), Password: getEnv("AUTH_PASSWORD", "")},
		RedisAddress:    getEnv("REDIS_ADDRESS", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		MicroserviceURLs: map[microservice.Microservice]string{
			microservice.DrugTrafficking: getEnv("MICROSERVICE_DRUGTRAFFICKING_URL", ""),
		},
	}
	c.HTTPTimeout = getDuration("HTTP_TIMEOUT", 10*time.Second, &errs)
	c.RetryMax = uint8(getUint("RETRY_MAX", 2, 8, &errs))
	c.RetryBackoff = getDuration("RETRY_BACKOFF", 100*time.Millisecond, &errs)
	c.CircuitBreakerMaxRequests = uint32(getUint("CB_MAX_REQUESTS", 1, 32, &errs))
	c.CircuitBreakerConsecutiveFailures = uint32(getUint("CB_CONSECUTIVE_FAILURES", 5, 32, &errs))
	c.CircuitBreakerInterval = getDuration("CB_INTERVAL", 60*time.Second, &errs)
	c.CircuitBreakerTimeout = getDuration("CB_TIMEOUT", 30*time.Second, &errs)
	c.AuthCacheTTL = getDuration("AUTH_CACHE_TTL", 30*time.Minute, &errs)
	c.SessionTTL = getDuration("SESSION_TTL", 0, &errs)
	c.RedisDB = int(getUint("REDIS_DB", 0, 8, &errs))
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// AuthEnabled reports whether outgoing calls get microservice authentication
func (c *Config) AuthEnabled() bool {
	return c.AuthBaseURL != ""
}

func (c *Config) Validate() error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: HTTP_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.AuthEnabled() && (c.AuthCredentials.Email == "" || c.AuthCredentials.Password == "") {
		return fmt.Errorf("%w: AUTH_EMAIL and AUTH_PASSWORD are required with AUTH_BASE_URL", ErrInvalidConfig)
	}
	if c.RedisDB > 15 {
		return fmt.Errorf("%w: REDIS_DB must be between 0 and 15", ErrInvalidConfig)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err))
		return defaultValue
	}
	return d
}

func getUint(key string, defaultValue uint64, bitSize int, errs *[]error) uint64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	n, err := strconv.ParseUint(value, 10, bitSize)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err))
		return defaultValue
	}
	return n
}
