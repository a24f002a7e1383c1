// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// SchemeHTTP connects to the wiki over plain HTTP.
	SchemeHTTP Scheme = "http"
	// SchemeHTTPS connects to the wiki over HTTPS.
	SchemeHTTPS Scheme = "https"
)

var (
	// ErrInvalidScheme is the sentinel error wrapped by InvalidSchemeError.
	ErrInvalidScheme = errors.New("invalid scheme")
	// ErrInvalidIndentWidth is the sentinel error wrapped by InvalidIndentWidthError.
	ErrInvalidIndentWidth = errors.New("invalid indent width")
	// ErrCredentialsMismatch is returned when exactly one of username and
	// password is set.
	ErrCredentialsMismatch = errors.New("set both username and password or neither")
	// ErrHostMissing is returned when no host is configured for a call.
	ErrHostMissing = errors.New("missing host (set --host or MWCLI_HOST)")
)

type (
	// Scheme is the URL scheme used to reach the wiki.
	Scheme string

	// InvalidSchemeError is returned when a Scheme value is not recognized.
	// It wraps ErrInvalidScheme for errors.Is() compatibility.
	InvalidSchemeError struct {
		Value Scheme
	}

	// IndentWidth is the JSON pretty-print indentation in spaces.
	// Zero selects compact output.
	IndentWidth int

	// InvalidIndentWidthError is returned when an IndentWidth is negative.
	// It wraps ErrInvalidIndentWidth for errors.Is() compatibility.
	InvalidIndentWidthError struct {
		Value IndentWidth
	}
)

// Error implements the error interface.
func (e *InvalidSchemeError) Error() string {
	return fmt.Sprintf("invalid scheme %q (must be http or https)", string(e.Value))
}

// Unwrap returns ErrInvalidScheme so callers can use errors.Is for programmatic detection.
func (e *InvalidSchemeError) Unwrap() error { return ErrInvalidScheme }

// Validate returns an error if the Scheme is not http or https.
func (s Scheme) Validate() error {
	switch s {
	case SchemeHTTP, SchemeHTTPS:
		return nil
	}
	return &InvalidSchemeError{Value: s}
}

// Error implements the error interface.
func (e *InvalidIndentWidthError) Error() string {
	return fmt.Sprintf("invalid indent width %d (must not be negative)", int(e.Value))
}

// Unwrap returns ErrInvalidIndentWidth for errors.Is chains.
func (e *InvalidIndentWidthError) Unwrap() error { return ErrInvalidIndentWidth }

// Validate returns an error if the IndentWidth is negative.
func (w IndentWidth) Validate() error {
	if w < 0 {
		return &InvalidIndentWidthError{Value: w}
	}
	return nil
}
