// Package engine implements the instantiation and dispatch engine of
// spec.md §4.4: the eight-step instantiate protocol, type compatibility,
// call dispatch, the start function, subcomponent linking, and the
// resource table.
package engine

import "errors"

// ValidationError is returned by Instantiate when the eight-step protocol's
// length check, type-compatibility pass, or final validation fails.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "engine: validation failed: " + e.Msg }

// TypeMismatchError is returned when a resolved export's realized kind does
// not match what the caller or the start-function contract expects.
type TypeMismatchError struct {
	Msg string
}

func (e *TypeMismatchError) Error() string { return "engine: type mismatch: " + e.Msg }

// ExecutionTimeoutError is returned by ExecuteStart when elapsed wall time
// exceeds the caller's time_limit_ms without clobbering the function's
// side effects (spec.md §4.4, §5).
type ExecutionTimeoutError struct {
	ElapsedMs int64
	LimitMs   int64
}

func (e *ExecutionTimeoutError) Error() string {
	return "engine: execution timed out"
}

// MemoryAccessError is returned when a read or write cannot acquire the
// single-writer/multi-reader discipline spec.md §5 requires of a
// MemoryValue, or falls outside its bounds.
type MemoryAccessError struct {
	Msg string
}

func (e *MemoryAccessError) Error() string { return "engine: memory access failed: " + e.Msg }

// ErrNotImplemented is returned by a RuntimeHandle or HostCallbackRegistry
// method the concrete collaborator does not support (spec.md §6.3).
var ErrNotImplemented = errors.New("engine: not implemented by this collaborator")

// ErrSelfLink is returned by LinkComponent when asked to link a component
// to itself (spec.md §4.4: "self-insertion is forbidden").
var ErrSelfLink = errors.New("engine: a component cannot be linked to itself")
