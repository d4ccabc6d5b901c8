// Package session holds the per-device connection state: the outgoing message
// counter seeded by the handshake, the connectivity flag, timing parameters and
// the watchdog that guards liveness.
//
// A Session is owned by a single goroutine (the client's event loop). Its
// accessors are nonetheless safe to call from other goroutines so callers can
// observe state without going through the loop.
package session

// State is the connection lifecycle state.
type State int

const (
	// StateDisconnected is the initial state and the state after a link loss.
	StateDisconnected State = iota

	// StateSyncing means a handshake request is in flight.
	StateSyncing

	// StateSubscribing means the handshake completed and the status
	// subscription is being opened.
	StateSubscribing

	// StateObserving means the subscription is open. The session becomes
	// connected with the first valid notification.
	StateObserving

	// StateDestroyed is terminal.
	StateDestroyed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateSyncing:
		return "Syncing"
	case StateSubscribing:
		return "Subscribing"
	case StateObserving:
		return "Observing"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// WatchdogKind tags which recovery timer a Watchdog currently holds.
type WatchdogKind int

const (
	// WatchdogNone means no timer is armed.
	WatchdogNone WatchdogKind = iota

	// WatchdogReconnect restarts the handshake if no live stream is
	// established within the reconnect interval.
	WatchdogReconnect

	// WatchdogKeepalive restarts the handshake if notifications stop
	// arriving within the alive timeout.
	WatchdogKeepalive
)

// String returns a human-readable name for the watchdog kind.
func (k WatchdogKind) String() string {
	switch k {
	case WatchdogNone:
		return "None"
	case WatchdogReconnect:
		return "Reconnect"
	case WatchdogKeepalive:
		return "Keepalive"
	default:
		return "Unknown"
	}
}
