package api

import (
	"errors"
	"fmt"
)

// ConnectionMessage is shown when the API cannot be reached or answers with
// something unreadable.
const ConnectionMessage = "Error connecting to server"

// ErrorKind classifies gateway failures.
type ErrorKind int

const (
	// KindTransport covers unreachable servers, timeouts and malformed
	// success responses.
	KindTransport ErrorKind = iota + 1
	// KindApplication covers non-2xx responses.
	KindApplication
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	default:
		return "unknown"
	}
}

// Error is returned by every Client call that fails after the request was
// built.
type Error struct {
	Kind    ErrorKind
	Op      string
	Status  int    // HTTP status, zero when no response was read
	Message string // user-facing text
	Err     error
}

func (e *Error) Error() string {
	if e.Kind == KindApplication {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindTransport
}

// IsApplication reports whether err is a server-reported failure.
func IsApplication(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindApplication
}

// UserMessage returns the text to show for err: the server's message for
// application errors, ConnectionMessage for transport errors and the error
// text otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Kind == KindApplication && apiErr.Message != "" {
			return apiErr.Message
		}
		return ConnectionMessage
	}
	return err.Error()
}
