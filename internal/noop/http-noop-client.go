package noop

import (
	"net/http"
	"time"

	"github.com/RassulYunussov/msclient/common"
)

type noOpHttpClient struct {
	client *http.Client
}

// CreateNoOpHttpClient is the innermost client of the chain, transport defaults to http.DefaultTransport
func CreateNoOpHttpClient(timeout time.Duration, transport http.RoundTripper) common.EnhancedHttpClient {
	return &noOpHttpClient{client: &http.Client{Timeout: timeout, Transport: transport}}
}

func (c *noOpHttpClient) DoResourceRequest(resource string, r *http.Request) (*http.Response, error) {
	return c.client.Do(r)
}

func (c *noOpHttpClient) Do(r *http.Request) (*http.Response, error) {
	return c.client.Do(r)
}
