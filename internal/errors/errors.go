package errors

import "errors"

var (
	ErrHttp5xxStatus    = errors.New("http 5xx status")
	ErrRetriesExhausted = errors.New("retries exhausted")
	ErrAuthentication   = errors.New("microservice authentication failed")
	ErrSessionLookup    = errors.New("session lookup failed")
	ErrAuthCache        = errors.New("auth cache failure")
)
