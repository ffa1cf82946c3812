package toolbridge

import (
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrNotFound
	ErrBadParameter
	ErrNotImplemented
	ErrConflict
	ErrInternalServerError
	ErrRemote
	ErrResponseFormat
	ErrTransport
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Errors
type Err int

// HTTPError is returned when the remote service responds with a
// non-2xx status. It unwraps to ErrRemote.
type HTTPError struct {
	Status int
	Body   string
}

var _ error = (*HTTPError)(nil)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrNotFound:
		return "not found"
	case ErrBadParameter:
		return "bad parameter"
	case ErrNotImplemented:
		return "not implemented"
	case ErrConflict:
		return "conflict"
	case ErrInternalServerError:
		return "internal server error"
	case ErrRemote:
		return "remote error"
	case ErrResponseFormat:
		return "invalid response format"
	case ErrTransport:
		return "transport error"
	}
	return fmt.Sprintf("error code %d", int(e))
}

func (e Err) With(args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}

// NewHTTPError returns an error carrying the remote status and raw body
func NewHTTPError(status int, body string) *HTTPError {
	return &HTTPError{Status: status, Body: body}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

func (e *HTTPError) Unwrap() error {
	return ErrRemote
}
