package resilient

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/RassulYunussov/msclient/common"
	local_errors "github.com/RassulYunussov/msclient/internal/errors"
	"github.com/RassulYunussov/msclient/internal/request"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

var ErrRetriesExhausted = local_errors.ErrRetriesExhausted

type resilientHttpClient struct {
	client   common.EnhancedHttpClient
	maxRetry uint8
	backoffs []int64
	logger   *zap.Logger
}

func CreateResilientHttpClient(client common.EnhancedHttpClient, retryParameters *RetryParameters, logger *zap.Logger) common.EnhancedHttpClient {
	c := resilientHttpClient{client: client, logger: logger} // default to not retry
	if retryParameters != nil {
		c.maxRetry = retryParameters.MaxRetry
		c.backoffs = make([]int64, uint16(retryParameters.MaxRetry))
		int64BackoffTimeout := int64(retryParameters.BackoffTimeout)
		for i := int64(0); i < int64(retryParameters.MaxRetry); i++ {
			c.backoffs[i] = (i + 1) * int64BackoffTimeout
		}
	}
	return &c
}

func (c *resilientHttpClient) DoResourceRequest(resource string, r *http.Request) (*http.Response, error) {
	if c.maxRetry == 0 {
		return c.client.DoResourceRequest(resource, r)
	}
	return c.doWithRetry(resource, r)
}

func (c *resilientHttpClient) Do(r *http.Request) (*http.Response, error) {
	return c.DoResourceRequest(request.Resource(r), r)
}

func (c *resilientHttpClient) do(resource string, r *http.Request) (*http.Response, error) {
	resp, err := c.client.DoResourceRequest(resource, r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusInternalServerError {
		return resp, nil
	}
	request.Discard(resp)
	return nil, local_errors.ErrHttp5xxStatus
}

func retriable(err error) bool {
	return !errors.Is(err, context.DeadlineExceeded) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, gobreaker.ErrOpenState) &&
		!errors.Is(err, gobreaker.ErrTooManyRequests)
}

func (c *resilientHttpClient) backoff(ctx context.Context, step uint16) error {
	if step == uint16(c.maxRetry) || c.backoffs[step] <= 1 {
		return nil
	}
	jitter := rand.Int63n(c.backoffs[step] >> 1)
	timer := time.NewTimer(time.Duration(c.backoffs[step] + jitter))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *resilientHttpClient) doWithRetry(resource string, r *http.Request) (*http.Response, error) {
	var err error
	for i := uint16(0); i <= uint16(c.maxRetry); i++ {
		if i > 0 {
			if err := request.Rewind(r); err != nil {
				return nil, err
			}
		}
		var resp *http.Response
		resp, err = c.do(resource, r)
		if err == nil {
			return resp, nil
		}
		if !retriable(err) {
			return nil, err
		}
		c.logger.Debug("retrying request", zap.String("resource", resource), zap.Uint16("attempt", i+1), zap.Error(err))
		if err := c.backoff(r.Context(), i); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrRetriesExhausted, err)
}
