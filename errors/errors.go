package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in a pack invocation the error occurred
type Phase string

const (
	PhaseSelect   Phase = "select"   // backend selection
	PhaseValidate Phase = "validate" // parameter validation
	PhaseInit     Phase = "init"     // engine compile/link/instantiate
	PhasePack     Phase = "pack"     // guest invocation
	PhaseIO       Phase = "io"       // host disk read/write
)

// Kind categorizes the error
type Kind string

const (
	KindRuntimeUnavailable Kind = "runtime_unavailable"
	KindInputNotFound      Kind = "input_not_found"
	KindValidation         Kind = "validation"
	KindGuestFailure       Kind = "guest_failure"
	KindIO                 Kind = "io"
	KindArgument           Kind = "argument"
	KindOutOfBounds        Kind = "out_of_bounds"
	KindMissingExport      Kind = "missing_export"
	KindInstantiation      Kind = "instantiation"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// New creates a structured error with a formatted detail message
func New(phase Phase, kind Kind, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{Phase: phase, Kind: kind, Detail: detail}
}

// Wrap creates a structured error with an underlying cause
func Wrap(phase Phase, kind Kind, cause error, detail string, args ...any) *Error {
	e := New(phase, kind, detail, args...)
	e.Cause = cause
	return e
}

// Convenience constructors for common error patterns

// RuntimeUnavailable creates a runtime/WASM-file availability error
func RuntimeUnavailable(detail string, args ...any) *Error {
	return New(PhaseSelect, KindRuntimeUnavailable, detail, args...)
}

// InputNotFound creates a missing-input-file error
func InputNotFound(path string) *Error {
	return New(PhaseValidate, KindInputNotFound, "input file not found: %s", path)
}

// Validation creates a parameter validation error
func Validation(detail string, args ...any) *Error {
	return New(PhaseValidate, KindValidation, detail, args...)
}

// GuestFailure creates an error for a nonzero guest return code.
// The captured guest log is the diagnostic payload.
func GuestFailure(code int32, log string) *Error {
	return New(PhasePack, KindGuestFailure, "gltfpack failed (exit %d): %s", code, strings.TrimSpace(log))
}

// OutOfBounds creates a linear-memory bounds error
func OutOfBounds(offset uint32, length int) *Error {
	return New(PhasePack, KindOutOfBounds, "memory access out of bounds: offset=%d, length=%d", offset, length)
}

// MissingExport creates an error for a guest binary lacking a required export
func MissingExport(name string) *Error {
	return New(PhaseInit, KindMissingExport, "guest module does not export %q", name)
}

// IsKind reports whether err is (or wraps) a structured error of the given kind
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
