package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfig indicates missing or invalid configuration.
	// Fatal at startup; nothing can run without valid settings.
	ErrConfig = errors.New("invalid configuration")

	// ErrLoad indicates a catalog or persona source is missing, empty,
	// or failed schema validation. Fatal at startup.
	ErrLoad = errors.New("data load failed")

	// ErrService indicates an external call (LLM, log sink) failed after
	// retries. Recoverable at the orchestration boundary; in-memory
	// conversation state is never corrupted by it.
	ErrService = errors.New("service call failed")

	// ErrConversationClosed indicates an attempted mutation of a
	// completed or abandoned conversation. Caller error, never silently
	// ignored.
	ErrConversationClosed = errors.New("conversation is not active")

	// ErrRateLimited indicates the LLM API rate limit was exceeded.
	// The retry wrapper backs off longer when it sees this.
	ErrRateLimited = errors.New("rate limited")

	// ErrLLMUnavailable indicates the LLM service is not configured
	// or unreachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
