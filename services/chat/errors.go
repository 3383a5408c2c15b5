package chat

import "errors"

var (
	// ErrClassifierUnavailable marks a failed or non-success remote model call.
	ErrClassifierUnavailable = errors.New("classifier unavailable")
	// ErrMalformedResponse marks model output that did not parse as the
	// expected JSON shape after fence stripping.
	ErrMalformedResponse = errors.New("malformed classifier response")
)
