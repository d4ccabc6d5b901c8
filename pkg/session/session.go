package session

import (
	"sync"

	"github.com/backkem/airpurifier/pkg/message"
)

// Session is the mutable connection state of one device.
type Session struct {
	address string
	params  Params
	counter *message.Counter

	mu        sync.RWMutex
	state     State
	connected bool
}

// New creates a disconnected session with an uninitialized counter.
func New(address string, params Params) *Session {
	return &Session{
		address: address,
		params:  params.WithDefaults(),
		counter: message.NewCounter(),
		state:   StateDisconnected,
	}
}

// Address returns the device address.
func (s *Session) Address() string {
	return s.address
}

// Params returns the timing parameters.
func (s *Session) Params() Params {
	return s.params
}

// Counter returns the outgoing session counter.
func (s *Session) Counter() *message.Counter {
	return s.counter
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetState moves to a new state and returns the previous one.
// Once destroyed the state no longer changes.
func (s *Session) SetState(state State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.state
	if old != StateDestroyed {
		s.state = state
	}
	return old
}

// Connected reports whether a live notification stream exists.
func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// MarkConnected sets the connected flag and reports whether it changed.
func (s *Session) MarkConnected() bool {
	return s.setConnected(true)
}

// MarkDisconnected clears the connected flag and reports whether it changed.
func (s *Session) MarkDisconnected() bool {
	return s.setConnected(false)
}

func (s *Session) setConnected(v bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected == v {
		return false
	}
	s.connected = v
	return true
}

// Begin seeds the counter from a handshake response.
func (s *Session) Begin(handshake string) error {
	return s.counter.SetHex(handshake)
}

// Invalidate drops the handshake material. Commands must wait for the next
// Begin.
func (s *Session) Invalidate() {
	s.counter.Reset()
}

// Ready reports whether a handshake has seeded the counter.
func (s *Session) Ready() bool {
	return s.counter.Initialized()
}
