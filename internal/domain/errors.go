package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups for projects or artifacts that do not exist.
var ErrNotFound = errors.New("not found")

// ErrorKind classifies a pipeline failure.
type ErrorKind string

const (
	// ErrValidation means the caller violated a precondition, for example
	// approving an empty script.
	ErrValidation ErrorKind = "validation"
	// ErrUpstream means an external service was reachable but returned a
	// failure or unusable content.
	ErrUpstream ErrorKind = "upstream"
	// ErrTransport means the external service could not be reached in time.
	ErrTransport ErrorKind = "transport"
)

// Error is the single error shape crossing the gateway and coordinator
// boundaries. Presentation code only ever needs the kind and the message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validationf builds a validation error.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// Upstreamf builds an upstream error.
func Upstreamf(format string, args ...any) *Error {
	return &Error{Kind: ErrUpstream, Message: fmt.Sprintf(format, args...)}
}

// Transportf builds a transport error.
func Transportf(format string, args ...any) *Error {
	return &Error{Kind: ErrTransport, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from err, defaulting to upstream for errors that
// were not classified at the boundary.
func KindOf(err error) ErrorKind {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Kind
	}
	return ErrUpstream
}
