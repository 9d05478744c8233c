package common

import "errors"

// Error taxonomy shared by the push and synchronous paths. The REST layer
// maps these to status codes; push handlers mostly drop them silently.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrValidation   = errors.New("validation failed")
)
