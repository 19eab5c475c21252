package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// Provider failures fall into three buckets the retry layer cares
// about: rate limits (wait, then retry), output that fails the quiz
// schema (retry once), and an unreachable backend. Callers classify
// with errors.As against these types.

// ErrRateLimit is returned when the backend answered 429.
type ErrRateLimit struct {
	// RetryAfter is the wait the backend asked for, zero when it
	// sent no Retry-After header.
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("llm: rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("llm: rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is returned when the model produced output that is
// not valid JSON or does not satisfy the requested schema. Content
// holds the rejected output for the audit log.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("llm: unusable model output: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable is returned when the backend is down or
// unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "llm: provider unavailable"
	}
	return fmt.Sprintf("llm: provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }
