// Package errors provides structured error types for the gltfpack library.
//
// Errors are categorized by Phase (where in a pack invocation the error
// occurred) and Kind (error category matching the library's failure
// taxonomy: runtime availability, input lookup, parameter validation,
// guest failure, host I/O).
//
// Use New or Wrap for structured construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindValidation,
//		"simplify ratio must be in [0.0, 1.0], got %v", ratio)
//
// Or the convenience constructors for common patterns:
//
//	err := errors.InputNotFound(path)
//	err := errors.GuestFailure(code, log)
//
// All errors implement the standard error interface and support errors.Is/As.
// Public entry points never surface these as raised errors; the runner folds
// them into its uniform (ok, path, message) result.
package errors
