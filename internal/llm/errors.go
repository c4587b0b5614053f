package llm

import "errors"

var (
	// ErrMissingAPIKey indicates no API key was configured.
	ErrMissingAPIKey = errors.New("ai api key not set")

	// ErrUnavailable indicates the generation endpoint is unreachable.
	ErrUnavailable = errors.New("ai endpoint unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("ai request timed out")

	// ErrEmptyResponse indicates the model returned no usable text.
	ErrEmptyResponse = errors.New("ai response empty")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("ai retry attempts exhausted")
)
