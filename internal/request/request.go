package request

import (
	"fmt"
	"io"
	"net/http"
)

// Resource is the circuit breaker name of a request without an explicit resource
func Resource(r *http.Request) string {
	return r.Method + "_" + r.URL.Path
}

// Rewind restores the body of a request that is about to be sent again.
// Requests built by http.NewRequest over bytes/strings readers carry GetBody.
func Rewind(r *http.Request) error {
	if r.Body == nil || r.Body == http.NoBody || r.GetBody == nil {
		return nil
	}
	body, err := r.GetBody()
	if err != nil {
		return fmt.Errorf("failed to rewind request body: %w", err)
	}
	r.Body = body
	return nil
}

// Discard drains and closes a response that will not reach the caller
func Discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
