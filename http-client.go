package msclient

import (
	"net/http"
	"time"

	"github.com/RassulYunussov/msclient/common"
	"github.com/RassulYunussov/msclient/internal/auth"
	"github.com/RassulYunussov/msclient/internal/cb"
	"github.com/RassulYunussov/msclient/internal/noop"
	"github.com/RassulYunussov/msclient/internal/resilient"
	"go.uber.org/zap"
)

// Enhanced HttpClient backed by resiliency patterns and microservice authentication.
// Includes: retry, circuit breaker & bearer token policies.
// Retriable errors: http-5xx, network errors
// Non-retriable errors: context.DeadlineExceeded|context.Canceled|gobreaker.ErrOpenState|gobreaker.ErrTooManyRequests
type EnhancedHttpClient = common.EnhancedHttpClient

type Option func(*enhancedHttpClientCreationParameters) *enhancedHttpClientCreationParameters

// Get new instance of EnhancedHttpClient.
// Decorators are applied inside out: transport, circuit breaker, retry, microservice auth.
// Every authenticated send therefore goes through retry and circuit breaker policies.
func Create(timeout time.Duration, opts ...Option) EnhancedHttpClient {
	enhancedHttpClientCreationParameters := new(enhancedHttpClientCreationParameters)
	for _, o := range opts {
		enhancedHttpClientCreationParameters = o(enhancedHttpClientCreationParameters)
	}
	logger := enhancedHttpClientCreationParameters.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client := noop.CreateNoOpHttpClient(timeout, enhancedHttpClientCreationParameters.transport)
	if enhancedHttpClientCreationParameters.circuitBreakerParameters != nil {
		client = cb.CreateCircuitBreakerHttpClient(client, enhancedHttpClientCreationParameters.circuitBreakerParameters, logger)
	}
	if enhancedHttpClientCreationParameters.retryParameters != nil {
		client = resilient.CreateResilientHttpClient(client, enhancedHttpClientCreationParameters.retryParameters, logger)
	}
	if enhancedHttpClientCreationParameters.authParameters != nil {
		client = auth.CreateAuthHttpClient(client, enhancedHttpClientCreationParameters.authParameters, logger)
	}
	return client
}

// Apply retry policy to EnhancedHttpClient
func WithRetry(maxRetry uint8,
	backoffTimeout time.Duration) Option {
	return func(h *enhancedHttpClientCreationParameters) *enhancedHttpClientCreationParameters {
		retryParameters := new(resilient.RetryParameters)
		retryParameters.BackoffTimeout = backoffTimeout
		retryParameters.MaxRetry = maxRetry
		h.retryParameters = retryParameters
		return h
	}
}

// Apply circuit breaker policy to EnhancedHttpClient.
// https://github.com/sony/gobreaker
func WithCircuitBreaker(maxRequests uint32,
	consecutiveFailures uint32,
	interval time.Duration,
	timeout time.Duration) Option {
	return func(h *enhancedHttpClientCreationParameters) *enhancedHttpClientCreationParameters {
		circuitBreakerParameters := new(cb.CircuitBreakerParameters)
		circuitBreakerParameters.MaxRequests = maxRequests
		circuitBreakerParameters.ConsecutiveFailures = consecutiveFailures
		circuitBreakerParameters.Interval = interval
		circuitBreakerParameters.Timeout = timeout
		h.circuitBreakerParameters = circuitBreakerParameters
		return h
	}
}

// Apply microservice authentication to EnhancedHttpClient.
// Requests tagged with the X-Refit-Client header on behalf of a logged enterprise
// (GuidSessionDataRequest header or session.WithRequestID) get a bearer token,
// a 401 response triggers a single re-authentication and resend.
func WithMicroserviceAuth(sessions common.SessionData,
	cache common.AuthCache,
	authenticator common.Authenticator,
	credentials common.LoginCredentials) Option {
	return func(h *enhancedHttpClientCreationParameters) *enhancedHttpClientCreationParameters {
		h.authParameters = &auth.AuthParameters{
			Sessions:      sessions,
			Cache:         cache,
			Authenticator: authenticator,
			Credentials:   credentials,
		}
		return h
	}
}

// Use transport for outgoing requests instead of http.DefaultTransport
func WithTransport(transport http.RoundTripper) Option {
	return func(h *enhancedHttpClientCreationParameters) *enhancedHttpClientCreationParameters {
		h.transport = transport
		return h
	}
}

// Log retries, circuit breaker transitions and re-authentications
func WithLogger(logger *zap.Logger) Option {
	return func(h *enhancedHttpClientCreationParameters) *enhancedHttpClientCreationParameters {
		h.logger = logger
		return h
	}
}
