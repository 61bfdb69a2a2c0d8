package utils

import "errors"

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrUnauthorized = errors.New("unauthorized")

	// For malformed input rejected by a service-level check
	// (bad PIN format, out-of-range rate limit, missing field).
	ErrValidation = errors.New("validation_error")

	// For rate limiting
	ErrRateLimitExceeded = errors.New("rate_limit_exceeded")

	// For external service failures (e.g., SendGrid)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)
