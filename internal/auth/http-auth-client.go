package auth

import (
	"fmt"
	"net/http"

	"github.com/RassulYunussov/msclient/common"
	local_errors "github.com/RassulYunussov/msclient/internal/errors"
	"github.com/RassulYunussov/msclient/internal/request"
	"github.com/RassulYunussov/msclient/microservice"
	"github.com/RassulYunussov/msclient/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// first send plus a single re-authenticated one
const maxAuthAttempts = 2

type authHttpClient struct {
	client        common.EnhancedHttpClient
	sessions      common.SessionData
	cache         common.AuthCache
	authenticator common.Authenticator
	credentials   common.LoginCredentials
	logger        *zap.Logger
}

func CreateAuthHttpClient(client common.EnhancedHttpClient, authParameters *AuthParameters, logger *zap.Logger) common.EnhancedHttpClient {
	return &authHttpClient{
		client:        client,
		sessions:      authParameters.Sessions,
		cache:         authParameters.Cache,
		authenticator: authParameters.Authenticator,
		credentials:   authParameters.Credentials,
		logger:        logger,
	}
}

func (c *authHttpClient) DoResourceRequest(resource string, r *http.Request) (*http.Response, error) {
	// the bearer token is written on a copy, the caller's request stays untouched
	r = r.Clone(r.Context())
	enterpriseID, err := c.getLoggedEnterprise(r)
	if err != nil {
		return nil, err
	}
	if enterpriseID == 0 {
		c.logger.Debug("no logged enterprise, sending unauthenticated", zap.String("resource", resource))
		return c.client.DoResourceRequest(resource, r)
	}
	m := getMicroservice(r)

	var resp *http.Response
	for attempt := 0; attempt < maxAuthAttempts; attempt++ {
		isRetry := attempt > 0
		credential, err := c.cache.TryGetValidAuth(r.Context(), enterpriseID, m)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", local_errors.ErrAuthCache, err)
		}
		if credential == nil && !isRetry {
			if err := c.authenticate(r, enterpriseID, m); err != nil {
				return nil, err
			}
			continue
		}
		if credential != nil {
			setAuthorization(r, credential.Token)
		}
		if isRetry {
			if err := request.Rewind(r); err != nil {
				return nil, err
			}
		}
		resp, err = c.client.DoResourceRequest(resource, r)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusUnauthorized || isRetry {
			return resp, nil
		}
		c.logger.Info("microservice rejected credential, re-authenticating",
			zap.Int64("enterprise", enterpriseID),
			zap.Stringer("microservice", m),
			zap.String("resource", resource))
		request.Discard(resp)
		if err := c.authenticate(r, enterpriseID, m); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (c *authHttpClient) Do(r *http.Request) (*http.Response, error) {
	return c.DoResourceRequest(request.Resource(r), r)
}

func (c *authHttpClient) authenticate(r *http.Request, enterpriseID int64, m microservice.Microservice) error {
	if enterpriseID == 0 {
		return nil
	}
	token, err := c.authenticator.Login(r.Context(), c.credentials)
	if err != nil {
		return fmt.Errorf("%w: enterprise %d, microservice %s: %w", local_errors.ErrAuthentication, enterpriseID, m, err)
	}
	credential := common.Credential{Token: token, ExpiresAt: tokenExpiry(token)}
	if err := c.cache.AddOrUpdateAuth(r.Context(), enterpriseID, m, credential); err != nil {
		return fmt.Errorf("%w: %w", local_errors.ErrAuthCache, err)
	}
	c.logger.Debug("microservice credential refreshed", zap.Int64("enterprise", enterpriseID), zap.Stringer("microservice", m))
	return nil
}

func (c *authHttpClient) getLoggedEnterprise(r *http.Request) (int64, error) {
	correlationID := getSessionRequestID(r)
	if correlationID == uuid.Nil {
		return 0, nil
	}
	enterpriseID, err := c.sessions.GetLoggedEnterprise(r.Context(), correlationID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", local_errors.ErrSessionLookup, err)
	}
	return enterpriseID, nil
}

func setAuthorization(r *http.Request, token string) {
	if token != "" {
		r.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
}

// header first, then the id propagated by session.Middleware
func getSessionRequestID(r *http.Request) uuid.UUID {
	if id := session.ParseRequestID(r.Header); id != uuid.Nil {
		return id
	}
	return session.RequestIDFromContext(r.Context())
}

func getMicroservice(r *http.Request) microservice.Microservice {
	return microservice.Parse(r.Header.Get(common.MicroserviceHeader))
}
