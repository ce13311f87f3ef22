package msclient

import (
	"net/http"
)

type roundTripper struct {
	client EnhancedHttpClient
}

// RoundTripper adapts an EnhancedHttpClient for http.Client and libraries built on it.
// Requests are cloned, the caller's request is never modified.
func RoundTripper(client EnhancedHttpClient) http.RoundTripper {
	return &roundTripper{client: client}
}

func (t *roundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	return t.client.Do(r.Clone(r.Context()))
}
