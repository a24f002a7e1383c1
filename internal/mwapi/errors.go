// SPDX-License-Identifier: MPL-2.0

package mwapi

import (
	"errors"
	"fmt"
)

var (
	// ErrAPI is the sentinel error wrapped by APIError.
	ErrAPI = errors.New("api error")
	// ErrLoginFailed is the sentinel error wrapped by LoginError.
	ErrLoginFailed = errors.New("login failed")
	// ErrInvalidHost is returned when a Site is built with an empty host.
	ErrInvalidHost = errors.New("invalid host")
)

type (
	// APIError is an error reported by the remote API in a response body.
	// It is propagated to the caller without interpretation.
	APIError struct {
		Code string
		Info string
	}

	// LoginError is returned when the login handshake is rejected.
	LoginError struct {
		Reason string
	}

	// HTTPError is returned when the API endpoint answers with a non-2xx
	// status and no decodable API error body.
	HTTPError struct {
		StatusCode int
		URL        string
	}
)

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Info)
}

// Unwrap returns ErrAPI so callers can use errors.Is for programmatic detection.
func (e *APIError) Unwrap() error { return ErrAPI }

// Error implements the error interface.
func (e *LoginError) Error() string {
	return fmt.Sprintf("login failed: %s", e.Reason)
}

// Unwrap returns ErrLoginFailed for errors.Is chains.
func (e *LoginError) Unwrap() error { return ErrLoginFailed }

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d from %s", e.StatusCode, e.URL)
}
