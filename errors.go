package msclient

import (
	"errors"

	local_errors "github.com/RassulYunussov/msclient/internal/errors"
)

func IsHttp5xxStatusError(err error) bool {
	return errors.Is(err, local_errors.ErrHttp5xxStatus)
}

func IsRetriesExhaustedError(err error) bool {
	return errors.Is(err, local_errors.ErrRetriesExhausted)
}

// login against the authentication service failed
func IsAuthenticationError(err error) bool {
	return errors.Is(err, local_errors.ErrAuthentication)
}

func IsSessionLookupError(err error) bool {
	return errors.Is(err, local_errors.ErrSessionLookup)
}

func IsAuthCacheError(err error) bool {
	return errors.Is(err, local_errors.ErrAuthCache)
}
