package engine

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrUnreachable  = errors.New("target unreachable from source")
	ErrInvalidQuery = errors.New("invalid endpoint query")
)

// Endpoint names used in errors, logs and metrics
const (
	EndpointSource = "source"
	EndpointTarget = "target"
)

// RoutingError provides structured error information for routing operations.
type RoutingError struct {
	Op        string // Operation that failed (e.g., "route", "resolve")
	Endpoint  string // "source" or "target", if the failure is tied to one
	From      string // Source waypoint id (if resolved)
	To        string // Target waypoint id (if resolved)
	RequestID string
	Cause     error
}

// Error implements the error interface.
func (e *RoutingError) Error() string {
	msg := e.Op
	if e.Endpoint != "" {
		msg += " " + e.Endpoint
	}
	if e.From != "" || e.To != "" {
		msg += fmt.Sprintf(" %s -> %s", orDash(e.From), orDash(e.To))
	}
	if e.RequestID != "" {
		msg += fmt.Sprintf(" (request %s)", e.RequestID)
	}
	return fmt.Sprintf("%s: %v", msg, e.Cause)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Unwrap returns the underlying cause for error chain support.
func (e *RoutingError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *RoutingError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building RoutingErrors.
type ErrorBuilder struct {
	err RoutingError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: RoutingError{Op: op}}
}

// Source marks the failure as belonging to the source endpoint.
func (b *ErrorBuilder) Source() *ErrorBuilder {
	b.err.Endpoint = EndpointSource
	return b
}

// Target marks the failure as belonging to the target endpoint.
func (b *ErrorBuilder) Target() *ErrorBuilder {
	b.err.Endpoint = EndpointTarget
	return b
}

// Endpoint sets the endpoint name directly.
func (b *ErrorBuilder) Endpoint(name string) *ErrorBuilder {
	b.err.Endpoint = name
	return b
}

// Between sets the resolved waypoint ids.
func (b *ErrorBuilder) Between(from, to string) *ErrorBuilder {
	b.err.From = from
	b.err.To = to
	return b
}

// Request sets the request id.
func (b *ErrorBuilder) Request(id string) *ErrorBuilder {
	b.err.RequestID = id
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed RoutingError.
func (b *ErrorBuilder) Build() *RoutingError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// UnreachableError creates an unreachable-target error.
func UnreachableError(from, to string) error {
	return NewError("route").Between(from, to).Cause(ErrUnreachable).Err()
}

// EndpointError creates an endpoint resolution error.
func EndpointError(endpoint string, cause error) error {
	return NewError("resolve").Endpoint(endpoint).Cause(cause).Err()
}
