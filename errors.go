package commonfunc

import (
	"errors"
	"fmt"
)

// Common errors for file helper operations.
var (
	// Read errors
	ErrFileNotFound = errors.New("file not found")
	ErrDecode       = errors.New("decode error")

	// Dispatch errors
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalidData     = errors.New("invalid data for file type")

	// IO errors
	ErrIOFailed = errors.New("IO operation failed")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// FileNotFoundError reports a read against a path that does not exist.
type FileNotFoundError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found error : %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *FileNotFoundError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error.
func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

// DecodeError reports content that could not be parsed as its format.
type DecodeError struct {
	Format string
	Path   string
	Cause  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s decode error : %s: %v", e.Format, e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// UnsupportedTypeError reports a path whose extension has no handler.
type UnsupportedTypeError struct {
	Path      string
	Extension string
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file type: %s has no extension", e.Path)
	}
	return fmt.Sprintf("unsupported file type %q: %s", e.Extension, e.Path)
}

// Is reports whether the target matches this error.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// IOError represents an IO error with path information.
type IOError struct {
	Operation string
	Path      string
	Cause     error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("IO error during %s on %s: %v", e.Operation, e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *IOError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error.
func (e *IOError) Is(target error) bool {
	return target == ErrIOFailed
}
