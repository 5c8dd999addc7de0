// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Common error types and error handling utilities for hioload-video library.

package api

import "fmt"

// Common errors used across the library.
var (
	// ErrBufferInsufficient reports a plane whose slice run is smaller than
	// the requested transfer. Bytes copied before exhaustion stay written.
	ErrBufferInsufficient = fmt.Errorf("buffer insufficient to contain the frame")

	// ErrMalformedGeometry reports invalid plane/slice arguments (nil
	// buffer, pitch smaller than row width, plane index out of range).
	// Raised before any slice is touched.
	ErrMalformedGeometry = fmt.Errorf("malformed plane geometry")

	// ErrTransportFault reports a reply region that could not accept the
	// constructed response. Fatal to that single response only.
	ErrTransportFault = fmt.Errorf("reply transport fault")

	// ErrInvariantViolation reports misuse that correct callers never
	// produce, e.g. resolving an already-empty inflight command slot.
	ErrInvariantViolation = fmt.Errorf("invariant violation")

	ErrSchedulerStopped = fmt.Errorf("scheduler is stopped")
	ErrDeviceClosed     = fmt.Errorf("device is closed")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeBufferInsufficient
	ErrCodeMalformedGeometry
	ErrCodeTransportFault
	ErrCodeInvariantViolation
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
