// Package output provides console output and error handling for the sampy CLI.
package output

import (
	"errors"
	"fmt"
)

// Process exit codes. A tool that fails inside a run is reported, not
// returned, so it leaves the process at ExitSuccess; only `install` with
// strict_exit turns tool failures into ExitSystemError.
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
)

// ExitError carries the exit code an error maps to. Unknown tools, bad flag
// values and missing preconditions are user errors; a package.json that
// cannot be parsed, filesystem failures and failed strict batches are system
// errors.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError returns an ExitUserError with message.
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// UserErrorf formats a user error.
func UserErrorf(format string, args ...any) *ExitError {
	return NewUserError(fmt.Sprintf(format, args...))
}

// NewSystemError returns an ExitSystemError with message.
func NewSystemError(message string) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message}
}

// SystemErrorf formats a system error.
func SystemErrorf(format string, args ...any) *ExitError {
	return NewSystemError(fmt.Sprintf(format, args...))
}

// NewSystemErrorWithCause wraps cause, keeping it reachable through
// errors.Is and errors.As.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// GetExitCode maps err to a process exit code. Errors that carry no code
// count as user errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
