// SPDX-License-Identifier: MPL-2.0

package call

import (
	"errors"
	"fmt"

	"mwcli/internal/registry"
)

var (
	// ErrUsage is the sentinel wrapped by every pre-dispatch validation
	// failure. Usage errors are reported before any network call is made.
	ErrUsage = errors.New("invalid usage")
	// ErrUnknownMethod is the sentinel wrapped by UnknownMethodError.
	ErrUnknownMethod = errors.New("unknown method")
)

type (
	// KeywordError is returned for a malformed --kw token.
	KeywordError struct {
		Token  string
		Reason string
	}

	// UnknownMethodError is returned when the requested method is not in
	// the entity's public set.
	UnknownMethodError struct {
		Entity registry.Entity
		Name   string
	}

	// ArgumentError is returned when positional arguments cannot be bound
	// to the method's declared parameters.
	ArgumentError struct {
		Method string
		Reason string
	}

	// TitleError is returned when a title is missing for a page or image
	// target.
	TitleError struct {
		Entity registry.Entity
	}
)

// Error implements the error interface.
func (e *KeywordError) Error() string {
	return fmt.Sprintf("invalid --kw value %q: %s", e.Token, e.Reason)
}

// Unwrap returns ErrUsage for errors.Is chains.
func (e *KeywordError) Unwrap() error { return ErrUsage }

// Error implements the error interface.
func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown method %s.%s", e.Entity, e.Name)
}

// Unwrap returns ErrUnknownMethod for errors.Is chains.
func (e *UnknownMethodError) Unwrap() error { return ErrUnknownMethod }

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Method, e.Reason)
}

// Unwrap returns ErrUsage for errors.Is chains.
func (e *ArgumentError) Unwrap() error { return ErrUsage }

// Error implements the error interface.
func (e *TitleError) Error() string {
	return fmt.Sprintf("%s target requires a title", e.Entity)
}

// Unwrap returns ErrUsage for errors.Is chains.
func (e *TitleError) Unwrap() error { return ErrUsage }

// IsUsage reports whether err is any pre-dispatch validation failure.
func IsUsage(err error) bool {
	return errors.Is(err, ErrUsage) || errors.Is(err, ErrUnknownMethod)
}
