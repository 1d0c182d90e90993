// Package wrterr carries the engine-wide structured error kinds that don't
// already have a dedicated Go type elsewhere in the tree (internal/binary's
// ParseError, internal/engine's ValidationError/TypeMismatchError/
// MemoryAccessError/ExecutionTimeoutError, and internal/container's
// ErrCapacityExceeded/ErrItemTooLarge/ErrSlice/ErrConversion cover the rest
// of spec.md §7's list under their own names). It lives in its own package,
// rather than internal/engine, so the root wrtgo package can re-export it by
// alias without an import cycle — the same reason internal/logging aliases
// api.ValueType instead of redeclaring it.
package wrterr

import "fmt"

// Kind is a closed enum of the structured error kinds spec.md §7 lists that
// have no dedicated Go type of their own.
type Kind byte

const (
	// KindExecution is a dispatch failure that is not a timeout.
	KindExecution Kind = iota
	// KindFunctionNotFound is returned when a RuntimeHandle or
	// HostCallbackRegistry has no function registered under the resolved
	// name.
	KindFunctionNotFound
	// KindExportNotFound is returned when a named lookup (export, memory,
	// instance item) finds nothing by that name.
	KindExportNotFound
	// KindInvalidFunctionIndex is returned when a function index argument
	// falls outside a declared function-index space.
	KindInvalidFunctionIndex
	// KindInitialization is returned when an Engine is used before its
	// required optional collaborator (RuntimeHandle, HostCallbackRegistry)
	// has been set.
	KindInitialization
)

func (k Kind) String() string {
	switch k {
	case KindExecution:
		return "execution"
	case KindFunctionNotFound:
		return "function not found"
	case KindExportNotFound:
		return "export not found"
	case KindInvalidFunctionIndex:
		return "invalid function index"
	case KindInitialization:
		return "initialization"
	default:
		return "unknown"
	}
}

// Error is the wrapping struct spec.md §7's closed Kind enum attaches to: a
// Kind, a static message, and an optional wrapped cause, checked with
// errors.Is/errors.As rather than type switches (teacher pattern:
// sys.ExitError, wasm.InvalidFunctionIndex surfaced by value, never by
// panic).
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("wrt: %s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("wrt: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is a *Error of the same Kind, so callers can
// write errors.Is(err, wrterr.New(wrterr.KindExecution, "")) against a
// zero-value sentinel of the kind they care about.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

// New returns an *Error with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap returns an *Error carrying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}
