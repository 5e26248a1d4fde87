// Package engine orchestrates the rewrite pipeline: request validation,
// evidence building, planning, generation, fabrication validation, and the
// retry loop between them.
package engine

import "fmt"

// ErrorCode is a stable code identifying the kind of engine failure.
type ErrorCode string

// Engine error codes
const (
	// CodeInvalidInput rejects empty or oversized text before any generation call
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	// CodeEvidenceBuild rejects malformed extracted-entity input
	CodeEvidenceBuild ErrorCode = "EVIDENCE_BUILD_ERROR"
	// CodeLLMError reports an unavailable or misbehaving generation backend
	CodeLLMError ErrorCode = "LLM_ERROR"
	// CodeTimeout reports a generation backend bounded-wait expiry
	CodeTimeout ErrorCode = "TIMEOUT"
	// CodeInternal reports a parsing/logic defect; always surfaced, never swallowed
	CodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error is an engine failure with a stable code. Recoverable conditions
// (fabrication, timeout) are retried inside the engine; an Error reaching the
// caller is non-recoverable for this request.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
