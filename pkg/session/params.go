package session

import "time"

// Timing defaults.
const (
	// DefaultAliveTimeout is how long the link may stay silent before it is
	// considered dead.
	DefaultAliveTimeout = 30 * time.Second

	// DefaultReconnectInterval is the fixed retry interval of the reconnect
	// watchdog. There is no backoff.
	DefaultReconnectInterval = 30 * time.Second
)

// Params holds the session timing parameters.
type Params struct {
	// AliveTimeout is the keepalive watchdog interval.
	AliveTimeout time.Duration

	// ReconnectInterval is the reconnect watchdog interval.
	ReconnectInterval time.Duration
}

// DefaultParams returns the default timing parameters.
func DefaultParams() Params {
	return Params{
		AliveTimeout:      DefaultAliveTimeout,
		ReconnectInterval: DefaultReconnectInterval,
	}
}

// Validate reports whether both intervals are positive.
func (p Params) Validate() bool {
	return p.AliveTimeout > 0 && p.ReconnectInterval > 0
}

// WithDefaults returns a copy with zero values replaced by defaults.
func (p Params) WithDefaults() Params {
	result := p
	if result.AliveTimeout == 0 {
		result.AliveTimeout = DefaultAliveTimeout
	}
	if result.ReconnectInterval == 0 {
		result.ReconnectInterval = DefaultReconnectInterval
	}
	return result
}
