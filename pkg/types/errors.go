// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrQueueEmpty indicates a pop on an empty task queue. During the
	// drain phase this is the expected "no more work" signal, not a fault.
	ErrQueueEmpty = errors.New("task queue is empty")

	// ErrInvalidIndex indicates a digit index below 1
	ErrInvalidIndex = errors.New("digit index must be >= 1")

	// ErrRunInProgress indicates a coordinator that is already running
	ErrRunInProgress = errors.New("run already in progress")
)

// ComputeError represents a failed digit computation. A compute failure is
// fatal for the whole run: every digit is needed for the final sequence, so
// there is no retry and no partial output.
type ComputeError struct {
	// Index is the digit index whose computation failed
	Index int

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface
func (e *ComputeError) Error() string {
	return fmt.Sprintf("computing digit %d: %v", e.Index, e.Cause)
}

// Unwrap returns the underlying error
func (e *ComputeError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is a specific error
func (e *ComputeError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewComputeError creates a new compute error
func NewComputeError(index int, cause error) *ComputeError {
	return &ComputeError{Index: index, Cause: cause}
}

// MissingResultError indicates that the collect phase requested an index
// with no stored result. The completeness invariant guarantees this cannot
// happen after a full drain, so it always signals a bug and must surface as
// a hard failure rather than a silent default value.
type MissingResultError struct {
	// Index is the digit index with no stored result
	Index int
}

// Error implements the error interface
func (e *MissingResultError) Error() string {
	return fmt.Sprintf("no result stored for digit %d", e.Index)
}

// NewMissingResultError creates a new missing result error
func NewMissingResultError(index int) *MissingResultError {
	return &MissingResultError{Index: index}
}
