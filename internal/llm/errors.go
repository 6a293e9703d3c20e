// Package llm implements the adapter for the hosted LLM provider: prompt
// construction, the single non-streaming generate call, and schema-first
// parsing of the model reply into one of the five feature payloads.
//
// The adapter owns the translation of provider failures into the local error
// taxonomy; raw transport errors never leave this package uncategorized.
package llm

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUpstream indicates the provider was unreachable, timed out, or
	// returned a server-side error (including an open circuit breaker).
	ErrUpstream = errors.New("llm: upstream unavailable")

	// ErrQuota indicates the provider rejected the call due to rate or quota
	// limits. Callers treat it as an upstream outage with a retry hint.
	ErrQuota = errors.New("llm: quota exceeded")

	// ErrInvalidOutput indicates the model reply did not contain a payload
	// conforming to the requested schema. Never retried automatically: a
	// malformed reply costs as much as a good one.
	ErrInvalidOutput = errors.New("llm: invalid model output")
)

// QuotaError carries the provider's suggested retry delay when one was
// present in a 429 reply. It matches ErrQuota under errors.Is.
type QuotaError struct {
	RetryAfter time.Duration // zero when the provider gave no hint
}

// Error implements the error interface.
func (e *QuotaError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("llm: quota exceeded, retry in %s", e.RetryAfter)
	}
	return "llm: quota exceeded"
}

// Is reports ErrQuota equivalence so errors.Is(err, ErrQuota) holds.
func (e *QuotaError) Is(target error) bool { return target == ErrQuota }
