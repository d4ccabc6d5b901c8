// Package transport defines the request/response and observe primitive the
// purifier client runs on, together with a CoAP implementation and an
// in-memory simulated device for tests.
//
// The transport carries opaque bytes. Encryption happens above it.
package transport

import "context"

// Device resource paths.
const (
	// PathSync is the unauthenticated handshake resource.
	PathSync = "/sys/dev/sync"

	// PathStatus is the observable status resource.
	PathStatus = "/sys/dev/status"

	// PathControl accepts encrypted desired-state documents.
	PathControl = "/sys/dev/control"
)

// NotificationHandler receives each payload delivered on a subscription.
// The first call may carry an empty payload that only acknowledges the
// subscription. Implementations must not block.
type NotificationHandler func(payload []byte)

// Observation is a live subscription.
type Observation interface {
	// Cancel releases the subscription. No handler calls start after
	// Cancel returns.
	Cancel(ctx context.Context) error
}

// Transport is the device-facing exchange primitive.
type Transport interface {
	// Post sends body to path and returns the response body.
	Post(ctx context.Context, path string, body []byte) ([]byte, error)

	// Observe opens a long-lived, unconfirmed subscription to path.
	// It returns once the device acknowledged the subscription.
	Observe(ctx context.Context, path string, handler NotificationHandler) (Observation, error)

	// Close releases the transport.
	Close() error
}
