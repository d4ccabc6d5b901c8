package transport

import (
	"errors"
	"fmt"
)

// Transport errors.
var (
	// ErrClosed is returned when an operation is attempted on a closed transport.
	ErrClosed = errors.New("transport: closed")

	// ErrInvalidAddress is returned when the device address cannot be used.
	ErrInvalidAddress = errors.New("transport: invalid address")

	// ErrNotFound is returned when the device does not serve a path.
	ErrNotFound = errors.New("transport: resource not found")

	// ErrUnexpectedResponse is returned for a non-success response code.
	ErrUnexpectedResponse = errors.New("transport: unexpected response code")

	// ErrObserveFailed is returned when a subscription cannot be opened.
	ErrObserveFailed = errors.New("transport: observe failed")
)

// Error describes a failed exchange with the device. Transport errors are
// never fatal: the client retries them through its reconnect watchdog.
type Error struct {
	// Op is the operation, "post" or "observe".
	Op string
	// Path is the resource path.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var te *Error
	if errors.As(err, &te) {
		return err
	}
	return &Error{Op: op, Path: path, Err: err}
}
