// Package vireoerrors provides structured error handling for Vireo with rich
// context, stack traces, and error categorization. It enables consistent
// error handling patterns across the engine.
//
// # Overview
//
// The vireoerrors package extends Go's standard error handling with:
//   - Error categorization through ErrorType
//   - Structured context with key-value details
//   - Automatic stack trace capture
//   - Error wrapping with cause preservation
//
// # Basic Usage
//
//	// Create a new error
//	err := vireoerrors.New(vireoerrors.ErrorTypeValidation, "primary index out of range")
//
//	// Add context
//	err = err.WithDetail("primary_index", idx).
//	         WithDetail("columns", n)
//
//	// Wrap existing errors
//	if err := binary.Write(w, binary.LittleEndian, v); err != nil {
//	    return vireoerrors.Wrap(err, vireoerrors.ErrorTypeEncode, "write column payload").
//	        WithDetail("column", name)
//	}
//
// # Error Classes
//
// Encode and decode errors are the recoverable class: they wrap a failure of
// the byte sink or source and are reported to the caller. Internal and
// corruption errors describe invariant violations (mismatched schema/batch
// pairings, missing metadata) and are raised on unrecoverable paths.
//
// # Thread Safety
//
// Error instances are not thread-safe for modification. Create new instances
// or use WithDetail before sharing across goroutines.
package vireoerrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error, used for error handling
// strategies and log/monitoring classification.
type ErrorType string

const (
	// ErrorTypeInternal represents internal invariant violations
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeCorruption represents corrupted or mismatched on-disk state
	ErrorTypeCorruption ErrorType = "corruption"
	// ErrorTypeEncode represents failures while encoding to a byte sink
	ErrorTypeEncode ErrorType = "encode"
	// ErrorTypeDecode represents failures while decoding from a byte source
	ErrorTypeDecode ErrorType = "decode"
	// ErrorTypeValidation represents invalid caller-supplied input
	ErrorTypeValidation ErrorType = "validation"
)

// Error represents a structured error with context, providing rich debugging
// information and enabling error handling strategies based on category.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack, capturing the
// function name, file path, and line number for debugging.
type StackFrame struct {
	Function string // Fully qualified function name
	File     string // Source file path
	Line     int    // Line number in source file
}

// Error implements the error interface, returning a formatted error message
// that includes the error type, message, and cause (if present).
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error, enabling compatibility with errors.Is
// and errors.As for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error, providing additional
// context for debugging. This method can be chained.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message, automatically
// capturing the call stack at the point of creation.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates a new error with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context, preserving the
// original error as the cause. If the error is already a structured Error,
// its stack trace is preserved. Returns nil if the input error is nil.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType checks if the error is of the given type, useful for conditional
// logic based on error categories.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// captureStack captures the current call stack up to maxFrames deep,
// skipping the specified number of frames from the top.
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
