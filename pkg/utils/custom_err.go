package utils

import "errors"

var (
	ErrUnknownAction      = errors.New("unknown sync action")
	ErrInvalidPayload     = errors.New("invalid action payload")
	ErrURLRequired        = errors.New("url is required")
	ErrUnsupportedMapLink = errors.New("only google maps short links are supported")
	ErrLinkResolveFailed  = errors.New("failed to resolve the link")
	ErrRouteLimitReached  = errors.New("route lookup quota exhausted")
	ErrRouteLookupFailed  = errors.New("route lookup failed")
	ErrDatabaseError      = errors.New("database error")
)
