package contract

import "errors"

var (
	// ErrModelInvoke marks an upstream generation or classification
	// failure. It is never retried; callers surface one clear failure
	// message.
	ErrModelInvoke = errors.New("model invoke failed")

	// ErrSchemaViolation marks a capability response that does not match
	// its declared output contract.
	ErrSchemaViolation = errors.New("model response violates schema")

	// ErrAdvisoryContent marks advisory text detected in factual fields.
	// It is internal to the policy filter and never reaches a caller.
	ErrAdvisoryContent = errors.New("advisory content detected")

	ErrValidation = errors.New("validation failed")
)
