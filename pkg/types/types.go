// Package types defines core types and interfaces for the digitpool library
package types

// Task identifies one unit of work: a single digit index to compute.
// Tasks are immutable values; each one is enqueued exactly once and
// consumed by exactly one worker.
type Task struct {
	// Index is the 1-based position of the digit to compute
	Index int
}

// NewTask creates a task for the given digit index
func NewTask(index int) Task {
	return Task{Index: index}
}

// DigitComputer computes the digit value at a 1-based index.
//
// Implementations must be pure and deterministic: the same index always
// yields the same value, with no shared-state side effects, so concurrent
// calls from multiple workers need no synchronization. Per-call latency may
// grow with the index; callers must not assume uniform cost.
type DigitComputer interface {
	// Compute returns the digit value for index (index >= 1)
	Compute(index int) (uint64, error)
}

// DigitComputerFunc adapts a plain function to the DigitComputer interface
type DigitComputerFunc func(index int) (uint64, error)

// Compute calls f(index)
func (f DigitComputerFunc) Compute(index int) (uint64, error) {
	return f(index)
}

// ProgressFunc is an optional hook invoked at the start of each task a
// worker picks up. It carries no correctness obligation and runs outside
// all internal locks.
type ProgressFunc func(index int)

// ErrorHandler observes a computation failure before the run aborts.
// Returning an error has no effect on propagation; the run aborts either way.
type ErrorHandler func(error) error
