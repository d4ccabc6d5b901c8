package purifier

import "errors"

// Package-level errors.
var (
	// ErrInvalidConfig is returned when Config validation fails.
	ErrInvalidConfig = errors.New("purifier: invalid configuration")

	// ErrTransportRequired is returned when Config.Transport is nil.
	ErrTransportRequired = errors.New("purifier: transport is required")

	// ErrInvalidTimeout is returned for a negative watchdog interval.
	ErrInvalidTimeout = errors.New("purifier: timeouts must not be negative")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("purifier: client already started")

	// ErrNotStarted is returned when an operation requires a started client.
	ErrNotStarted = errors.New("purifier: client not started")

	// ErrClosed is returned once the client has been destroyed.
	ErrClosed = errors.New("purifier: client destroyed")

	// ErrParse is returned when a status document or an acknowledgement is
	// not well-formed.
	ErrParse = errors.New("purifier: malformed document")

	// ErrInvalidHandshake is returned when the handshake response is not a
	// counter value.
	ErrInvalidHandshake = errors.New("purifier: invalid handshake response")
)
