// Package errs normalizes every failure the client can hit into one shape so
// callers report them through a single branch.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by where it happened.
type Kind int

const (
	// NetworkFailure is a transport-level error: the request never got a response.
	NetworkFailure Kind = iota + 1
	// ServerRejection is a non-2xx response; the body describes the problem.
	ServerRejection
	// ClientPrecondition is a check that failed before any request was sent.
	ClientPrecondition
)

func (k Kind) String() string {
	switch k {
	case NetworkFailure:
		return "network failure"
	case ServerRejection:
		return "server rejection"
	case ClientPrecondition:
		return "client precondition"
	}
	return "unknown"
}

// Error is the normalized failure. Msg is what the user sees.
type Error struct {
	Kind   Kind
	Status int // HTTP status for ServerRejection
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Precondition builds a ClientPrecondition error wrapping cause.
func Precondition(cause error, format string, args ...any) *Error {
	return &Error{Kind: ClientPrecondition, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf reports the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Message returns the user-facing text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
