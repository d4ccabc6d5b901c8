package purifier

import (
	"github.com/backkem/airpurifier/pkg/session"
	"github.com/backkem/airpurifier/pkg/transport"
)

// event is a message for the client's event loop.
type event any

type reconnectRequest struct{}

type watchdogFired struct {
	kind session.WatchdogKind
	gen  uint64
}

type handshakeResult struct {
	attempt uint64
	body    []byte
	err     error
}

type subscribeResult struct {
	attempt uint64
	obs     transport.Observation
	err     error
}

type notification struct {
	attempt uint64
	payload []byte
}

type errorEvent struct {
	err error
}
