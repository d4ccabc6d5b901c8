package message

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// FormatCounter renders a counter as 8 uppercase hex characters.
func FormatCounter(v uint32) string {
	return fmt.Sprintf("%08X", v)
}

// ParseCounter parses a hex counter of 1 to 8 characters. Surrounding
// whitespace is ignored.
func ParseCounter(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > CounterLen {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCounter, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCounter, s)
	}
	return uint32(v), nil
}

// Counter is the outgoing session counter.
// It starts uninitialized, is seeded by the handshake and advances by one
// (mod 2^32) before every encryption. It never moves backwards except through
// Reset or a new Set at the next handshake.
//
// It is safe for concurrent use.
type Counter struct {
	mu          sync.Mutex
	value       uint32
	initialized bool
}

// NewCounter creates an uninitialized counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Set seeds the counter with a handshake value.
func (c *Counter) Set(v uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.initialized = true
}

// SetHex seeds the counter from its hex rendering.
func (c *Counter) SetHex(s string) error {
	v, err := ParseCounter(s)
	if err != nil {
		return err
	}
	c.Set(v)
	return nil
}

// Reset returns the counter to the uninitialized state.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = 0
	c.initialized = false
}

// Next increments the counter and returns the new value as hex.
// The returned value is the one used for the current encryption.
func (c *Counter) Next() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return "", ErrCounterUninitialized
	}
	c.value++ // wraps at 2^32
	return FormatCounter(c.value), nil
}

// Current returns the current value as hex and whether it is initialized.
func (c *Counter) Current() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return "", false
	}
	return FormatCounter(c.value), true
}

// Initialized reports whether a handshake has seeded the counter.
func (c *Counter) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}
