package cb

import (
	"errors"
	"net/http"
	"sync"

	"github.com/RassulYunussov/msclient/common"
	"github.com/RassulYunussov/msclient/internal/request"
	"go.uber.org/zap"
)

type circuitBreakerBackedHttpClient struct {
	client          common.EnhancedHttpClient
	parameters      CircuitBreakerParameters
	circuitBreakers sync.Map
	logger          *zap.Logger
}

func CreateCircuitBreakerHttpClient(client common.EnhancedHttpClient, circuitBreakerParameters *CircuitBreakerParameters, logger *zap.Logger) common.EnhancedHttpClient {
	return &circuitBreakerBackedHttpClient{
		client:     client,
		parameters: *circuitBreakerParameters,
		logger:     logger,
	}
}

func (c *circuitBreakerBackedHttpClient) DoResourceRequest(resource string, r *http.Request) (*http.Response, error) {
	cb := c.getCircuitBreaker(resource)
	resp, err := cb.execute(func(r *http.Request) (*http.Response, error) {
		return c.do(resource, r)
	}, r)
	var e *circuitBreakerErrorWrapper[*http.Response]
	if errors.As(err, &e) {
		return e.wrapped, nil
	}
	return resp, err
}

func (c *circuitBreakerBackedHttpClient) Do(r *http.Request) (*http.Response, error) {
	return c.DoResourceRequest(request.Resource(r), r)
}

func (c *circuitBreakerBackedHttpClient) getCircuitBreaker(resource string) *circuitBreaker[http.Request, http.Response] {
	if cb, ok := c.circuitBreakers.Load(resource); ok {
		return cb.(*circuitBreaker[http.Request, http.Response])
	}
	cb, _ := c.circuitBreakers.LoadOrStore(resource, newCircuitBreaker[http.Request, http.Response](&c.parameters, resource, c.logger))
	return cb.(*circuitBreaker[http.Request, http.Response])
}

func (c *circuitBreakerBackedHttpClient) do(resource string, r *http.Request) (*http.Response, error) {
	resp, err := c.client.DoResourceRequest(resource, r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusInternalServerError {
		return resp, nil
	}
	return nil, &circuitBreakerErrorWrapper[*http.Response]{
		wrapped: resp,
	}
}
