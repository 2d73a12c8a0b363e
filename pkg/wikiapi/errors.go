package wikiapi

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse reports a batch body without the expected value array.
// Stitching aborts rather than emit corrupted JSON.
var ErrMalformedResponse = errors.New("response has no value array")

// AuthError means the API rejected the supplied credentials (HTTP 401).
// Retrying with the same PAT cannot succeed, so it is never retried.
type AuthError struct{}

func (e *AuthError) Error() string {
	return "authentication rejected (401)"
}

// APIError is any other non-2xx response from the pages API.
type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: status %d", e.Status)
}

// TransientError wraps a transport-level failure that survived every retry
// attempt.
type TransientError struct {
	Attempts int
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}
