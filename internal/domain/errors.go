package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for image source operations.
// Every fetch error wraps ErrFetchFailed so callers can treat them as one category.
var (
	// ErrFetchFailed is the root of all image source failures
	ErrFetchFailed = errors.New("fetching images failed")

	// ErrSourceOffline indicates the image source is unreachable
	ErrSourceOffline = fmt.Errorf("%w: image source is unreachable", ErrFetchFailed)

	// ErrMalformedResponse indicates the source returned a payload we could not decode
	ErrMalformedResponse = fmt.Errorf("%w: malformed response", ErrFetchFailed)

	// ErrUnexpectedStatus indicates a non-success HTTP status
	ErrUnexpectedStatus = fmt.Errorf("%w: unexpected status", ErrFetchFailed)
)
