package oura

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey means no credential was configured. Surfaced as a
// configuration error at the route boundary.
var ErrMissingAPIKey = errors.New("OURA_API_KEY is not set")

// UpstreamError is a non-success HTTP response from the Oura API.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("oura api: status %d", e.Status)
	}
	return fmt.Sprintf("oura api: status %d: %s", e.Status, e.Body)
}

// TransportError is a network-level failure (timeout, DNS, connection reset).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("oura transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
