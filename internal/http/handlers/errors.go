// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes the symbolic error codes carried in the `error` field
// of the standard envelope (see response.go). They give clients a stable,
// machine-readable taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase snake_case.
//   - Generic codes (unauthorized, not_found, internal_error) mirror common
//     HTTP status semantics.
//   - Domain codes (upstream_unavailable, invalid_model_output) distinguish
//     failures of the data backend and the language model that share the 502
//     status.
package handlers

const (
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeValidation       = "validation_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeUpstreamUnavailable = "upstream_unavailable"
	ErrCodeInvalidModelOutput  = "invalid_model_output"
)
