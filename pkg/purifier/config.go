package purifier

import (
	"fmt"
	"time"

	"github.com/pion/logging"

	"github.com/backkem/airpurifier/pkg/attribute"
	"github.com/backkem/airpurifier/pkg/session"
	"github.com/backkem/airpurifier/pkg/transport"
)

// DefaultSecret is the protocol constant this device family derives its
// message keys from.
const DefaultSecret = "JiangPan"

// Config holds all configuration for a Client.
type Config struct {
	// Transport carries requests and the status subscription. Required.
	// The client never closes it.
	Transport transport.Transport

	// Secret is the key-derivation secret (default: DefaultSecret).
	Secret []byte

	// AliveTimeout is how long the status stream may stay silent before the
	// link is considered dead (default: 30s).
	AliveTimeout time.Duration

	// ReconnectInterval is the retry interval while no status has arrived
	// (default: 30s).
	ReconnectInterval time.Duration

	// Attributes is the attribute table (default: attribute.DefaultTable()).
	Attributes *attribute.Table

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory

	// Callbacks - Optional. They run on the client's event loop.
	OnConnected func(connected bool)
	OnStatus    func(status Status)
	OnError     func(err error)
	OnDebug     func(msg string)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Transport == nil {
		return ErrTransportRequired
	}
	if !c.SessionParams().WithDefaults().Validate() {
		return ErrInvalidTimeout
	}
	return nil
}

// applyDefaults fills in default values for unset fields.
func (c *Config) applyDefaults() {
	if len(c.Secret) == 0 {
		c.Secret = []byte(DefaultSecret)
	}
	if c.AliveTimeout == 0 {
		c.AliveTimeout = session.DefaultAliveTimeout
	}
	if c.ReconnectInterval == 0 {
		c.ReconnectInterval = session.DefaultReconnectInterval
	}
	if c.Attributes == nil {
		c.Attributes = attribute.DefaultTable()
	}
}

// SessionParams returns the watchdog timing from config.
func (c *Config) SessionParams() session.Params {
	return session.Params{
		AliveTimeout:      c.AliveTimeout,
		ReconnectInterval: c.ReconnectInterval,
	}
}

func invalidConfig(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}
