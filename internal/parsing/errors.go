// Package parsing turns raw generation-backend output into a structured
// rewrite response.
package parsing

import "fmt"

// ParseError represents a failure to extract a usable response from raw
// backend output, after both the JSON path and the regex fallback.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
