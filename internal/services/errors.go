// Package services composes the data-fetch and LLM adapters into the five
// generation features. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrUserNotFound indicates the requested learner does not exist in the
	// data backend.
	ErrUserNotFound = errors.New("user not found")

	// ErrUpstreamUnavailable indicates that the data backend or the LLM
	// provider was unreachable, timed out, or returned a server-side error.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrInvalidModelOutput indicates the LLM reply failed schema validation
	// and was discarded instead of being forwarded to the client.
	ErrInvalidModelOutput = errors.New("invalid model output")
)
