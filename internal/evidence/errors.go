// Package evidence builds the closed, addressable set of facts available to a
// single rewrite request.
package evidence

import "fmt"

// BuildError represents an error that occurs while building an evidence ledger
type BuildError struct {
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}
