package redis

import "errors"

// Errors returned by Open and Healthcheck.
var (
	ErrEmptyConnectionURL = errors.New("redis: connection URL is empty")
	ErrFailedToParseURL   = errors.New("redis: invalid connection URL")
	ErrConnectionFailed   = errors.New("redis: server unreachable")
	ErrHealthcheckFailed  = errors.New("redis: ping failed")
)
