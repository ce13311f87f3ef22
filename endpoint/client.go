// Package endpoint invokes the routes registered for each microservice.
package endpoint

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RassulYunussov/msclient"
	"github.com/RassulYunussov/msclient/common"
	"github.com/RassulYunussov/msclient/microservice"
	"github.com/RassulYunussov/msclient/session"
	"github.com/google/uuid"
	"resty.dev/v3"
)

// ApiResponse is the raw outcome of a route call.
// Non-2xx statuses are not errors, check IsSuccessStatusCode.
type ApiResponse[T any] struct {
	StatusCode int
	Header     http.Header
	Content    T
}

func (r *ApiResponse[T]) IsSuccessStatusCode() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client sends registered routes through an EnhancedHttpClient
type Client struct {
	rest     *resty.Client
	registry *microservice.Registry
}

func NewClient(client msclient.EnhancedHttpClient, registry *microservice.Registry) *Client {
	rest := resty.New().SetTransport(msclient.RoundTripper(client))
	return &Client{rest: rest, registry: registry}
}

// Invoke calls the named route of m. The request is tagged with the microservice
// and, when ctx carries one, the session correlation id.
func (c *Client) Invoke(ctx context.Context, m microservice.Microservice, routeName string, body any) (*ApiResponse[string], error) {
	route, baseURL, err := c.registry.Route(m, routeName)
	if err != nil {
		return nil, err
	}
	req := c.rest.R().
		SetContext(ctx).
		SetHeader(common.MicroserviceHeader, m.String())
	if id := session.RequestIDFromContext(ctx); id != uuid.Nil {
		req.SetHeader(common.SessionRequestHeader, id.String())
	}
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(route.Method, baseURL+route.Path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", route.Method, route.Path, err)
	}
	return &ApiResponse[string]{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Content:    resp.String(),
	}, nil
}

func (c *Client) Close() error {
	return c.rest.Close()
}
