package llm

import (
	"context"
	"errors"
	"fmt"
)

// BackendError represents a generation-backend failure. Timeout
// distinguishes bounded-wait expiry from other backend errors so the retry
// controller can report them separately; both share the same attempt budget.
type BackendError struct {
	Message string
	Timeout bool
	Cause   error
}

func (e *BackendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// classifyBackendError wraps a raw backend error, marking context deadline
// and cancellation as timeouts.
func classifyBackendError(message string, err error) *BackendError {
	timeout := errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
	return &BackendError{Message: message, Timeout: timeout, Cause: err}
}

// IsTimeout reports whether err is a backend timeout.
func IsTimeout(err error) bool {
	var backendErr *BackendError
	return errors.As(err, &backendErr) && backendErr.Timeout
}
