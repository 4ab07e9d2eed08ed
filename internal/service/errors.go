package service

import "errors"

// Failure taxonomy shared by the account and approval services. Handlers
// match these with errors.Is and map them to API error codes; anything else
// is a storage failure and surfaces as a retryable internal error.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("record not found")
	ErrBadCredentials = errors.New("bad credentials")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRole    = errors.New("invalid role")
)
