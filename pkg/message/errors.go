package message

import (
	"errors"
	"fmt"
)

// ErrIntegrity is the root of every envelope rejection. Callers match it with
// errors.Is to discard a message without retrying it.
var ErrIntegrity = errors.New("message: integrity check failed")

// Envelope errors. All of them match ErrIntegrity.
var (
	// ErrEnvelopeTooShort is returned for envelopes shorter than MinEnvelopeLen.
	// No digest is computed for such input.
	ErrEnvelopeTooShort = fmt.Errorf("%w: envelope too short", ErrIntegrity)

	// ErrDigestMismatch is returned when the trailing digest does not match
	// SHA-256 of the counter and ciphertext.
	ErrDigestMismatch = fmt.Errorf("%w: digest mismatch", ErrIntegrity)

	// ErrMalformedCiphertext is returned when the ciphertext is not valid hex,
	// is not block aligned, or does not carry valid padding.
	ErrMalformedCiphertext = fmt.Errorf("%w: malformed ciphertext", ErrIntegrity)
)

// Counter errors.
var (
	// ErrCounterUninitialized is returned by Codec.Encrypt before a handshake
	// has seeded the session counter.
	ErrCounterUninitialized = errors.New("message: session counter not initialized")

	// ErrInvalidCounter is returned when a counter is not 1-8 hex characters.
	ErrInvalidCounter = errors.New("message: invalid counter")
)
