package msclient

import (
	"net/http"

	"github.com/RassulYunussov/msclient/internal/auth"
	"github.com/RassulYunussov/msclient/internal/cb"
	"github.com/RassulYunussov/msclient/internal/resilient"
	"go.uber.org/zap"
)

type enhancedHttpClientCreationParameters struct {
	retryParameters          *resilient.RetryParameters
	circuitBreakerParameters *cb.CircuitBreakerParameters
	authParameters           *auth.AuthParameters
	transport                http.RoundTripper
	logger                   *zap.Logger
}
