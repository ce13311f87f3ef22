// Package authentication obtains microservice tokens from the authentication endpoint.
package authentication

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RassulYunussov/msclient/common"
	"resty.dev/v3"
)

const DefaultLoginPath = "/api/login"

var ErrEmptyToken = errors.New("login returned an empty token")

type loginResponse struct {
	Token string `json:"token"`
}

// Service logs in against the authentication endpoint
type Service struct {
	client    *resty.Client
	loginPath string
}

// NewService creates a login client for baseURL.
// Empty loginPath defaults to DefaultLoginPath.
func NewService(baseURL, loginPath string, timeout time.Duration) *Service {
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Service{client: client, loginPath: loginPath}
}

func (s *Service) Login(ctx context.Context, credentials common.LoginCredentials) (string, error) {
	var result loginResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(credentials).
		SetResult(&result).
		Post(s.loginPath)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("login failed (HTTP %d): %s", resp.StatusCode(), resp.String())
	}
	if result.Token == "" {
		return "", ErrEmptyToken
	}
	return result.Token, nil
}

func (s *Service) Close() error {
	return s.client.Close()
}
