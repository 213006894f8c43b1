package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes reported to the OS.
//
// Usage errors deliberately map to ExitSuccess: the command prints its usage
// text and exits 0, like the classic teaching programs it mirrors.
const (
	ExitSuccess       = 0   // Successful run, including usage output.
	ExitErrorGeneric  = 1   // Unexpected failure.
	ExitErrorTimeout  = 2   // The sweep exceeded its deadline.
	ExitErrorConfig   = 4   // Invalid environment configuration.
	ExitErrorCanceled = 130 // Interrupted (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as a malformed
// command line or environment override.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// UsageError signals that the command line does not match the expected
// shape and the usage text should be shown. Cause, when set, is the parse
// failure that triggered it.
type UsageError struct {
	Cause error
}

// Error returns a description of the usage failure.
func (e UsageError) Error() string {
	if e.Cause == nil {
		return "invalid usage"
	}
	return "invalid usage: " + e.Cause.Error()
}

// Unwrap returns the underlying parse failure.
func (e UsageError) Unwrap() error { return e.Cause }

// TimeoutError represents a sweep that ran past its deadline.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error returned by a run to the process exit code.
func ExitCodeFor(err error) int {
	var (
		usageErr   UsageError
		configErr  ConfigError
		timeoutErr TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usageErr):
		return ExitSuccess
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
