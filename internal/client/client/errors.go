package client

import "errors"

var (
	// ErrUnavailable wraps network-level failures (DNS, refused, timeout).
	ErrUnavailable = errors.New("server unavailable")

	// ErrMalformedResponse marks a response body that is not valid JSON.
	ErrMalformedResponse = errors.New("malformed response")
)
