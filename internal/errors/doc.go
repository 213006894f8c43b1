// Package apperrors defines the application's structured error types and
// exit codes, separating usage/configuration problems from runtime failures
// such as timeouts and cancellation.
//
// Errors are wrapped with fmt.Errorf and %w; every type carrying a cause
// implements Unwrap so that errors.Is and errors.As see through it.
package apperrors
