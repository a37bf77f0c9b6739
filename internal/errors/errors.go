// Package errors holds the error categories exposed on the API surface.
// Domain errors are defined next to the domain types instead.
package errors

import "errors"

var (
	ErrAPIServer         = errors.New("Server error")
	ErrAPIClient         = errors.New("Client error")
	ErrRatelimitExceeded = errors.New("Ratelimit exceeded")
)
