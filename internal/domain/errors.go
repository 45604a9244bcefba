package domain

import (
	"context"
	"errors"
)

// Sentinel errors for domain operations
var (
	// ErrNoConnection indicates the device has no network connectivity
	ErrNoConnection = errors.New("no internet connection")

	// ErrServerOffline indicates the movie API is unreachable
	ErrServerOffline = errors.New("movie service is unreachable")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("API key is invalid")

	// ErrNotFound indicates the requested movie does not exist
	ErrNotFound = errors.New("movie not found")

	// ErrRateLimited indicates the API refused the request due to rate limiting
	ErrRateLimited = errors.New("too many requests, try again shortly")

	// ErrTimeout indicates the movie API did not answer in time
	ErrTimeout = errors.New("movie service took too long to respond")
)

// Reason converts a fetch error into the text shown on the error view.
// No-connectivity and nil errors carry no reason; the presentation layer
// renders its generic "no connection" message for those. Timeouts from
// any layer read the same.
func Reason(err error) string {
	switch {
	case err == nil, errors.Is(err, ErrNoConnection):
		return ""
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout.Error()
	}
	return err.Error()
}
