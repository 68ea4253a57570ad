package common

import "errors"

// Sentinel errors shared by client layers. Callers should match them
// with errors.Is.
var (
	// ErrorNotFound reports a missing remote asset (raw file/image
	// endpoints answering 404).
	ErrorNotFound = errors.New("not found")

	// ErrInvalidToken reports an invalid or malformed auth token.
	ErrInvalidToken = errors.New("invalid token")
)
