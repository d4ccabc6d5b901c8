package transport

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/pion/logging"
	"github.com/plgd-dev/go-coap/v3/message"
	"github.com/plgd-dev/go-coap/v3/message/codes"
	"github.com/plgd-dev/go-coap/v3/message/pool"
	"github.com/plgd-dev/go-coap/v3/udp"
	udpClient "github.com/plgd-dev/go-coap/v3/udp/client"
)

// DefaultCoAPPort is the standard CoAP UDP port.
const DefaultCoAPPort = 5683

// CoAPConfig configures the CoAP transport.
type CoAPConfig struct {
	// Address is the device host, optionally with a port.
	// Required.
	Address string

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// CoAP implements Transport over CoAP/UDP.
// The UDP association is dialed lazily and re-dialed after it closes, so a
// reconnect at the protocol level also heals the socket.
type CoAP struct {
	target string
	log    logging.LeveledLogger

	mu     sync.Mutex
	conn   *udpClient.Conn
	closed bool
}

// NewCoAP creates a CoAP transport for a device.
func NewCoAP(config CoAPConfig) (*CoAP, error) {
	target, err := coapTarget(config.Address)
	if err != nil {
		return nil, err
	}

	c := &CoAP{target: target}
	if config.LoggerFactory != nil {
		c.log = config.LoggerFactory.NewLogger("transport-coap")
	}
	return c, nil
}

// coapTarget normalizes an address to host:port.
func coapTarget(address string) (string, error) {
	if address == "" {
		return "", ErrInvalidAddress
	}
	if _, _, err := net.SplitHostPort(address); err == nil {
		return address, nil
	}
	return net.JoinHostPort(address, strconv.Itoa(DefaultCoAPPort)), nil
}

// Target returns the host:port the transport talks to.
func (c *CoAP) Target() string {
	return c.target
}

// connection returns a live connection, dialing if needed.
func (c *CoAP) connection() (*udpClient.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}

	if c.conn != nil {
		select {
		case <-c.conn.Done():
			c.conn = nil
		default:
			return c.conn, nil
		}
	}

	if c.log != nil {
		c.log.Debugf("dialing %s", c.target)
	}
	conn, err := udp.Dial(c.target)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return conn, nil
}

// Post implements Transport.
func (c *CoAP) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	conn, err := c.connection()
	if err != nil {
		return nil, wrap("post", path, err)
	}

	if c.log != nil {
		c.log.Debugf("POST %s to %s (%d bytes)", path, c.target, len(body))
	}

	resp, err := conn.Post(ctx, path, message.TextPlain, bytes.NewReader(body))
	if err != nil {
		return nil, wrap("post", path, err)
	}
	if err := checkCode(resp.Code()); err != nil {
		return nil, wrap("post", path, err)
	}

	data, err := resp.ReadBody()
	if err != nil {
		return nil, wrap("post", path, err)
	}
	if c.log != nil {
		c.log.Tracef("POST %s response: %q", path, data)
	}
	return data, nil
}

// Observe implements Transport.
func (c *CoAP) Observe(ctx context.Context, path string, handler NotificationHandler) (Observation, error) {
	conn, err := c.connection()
	if err != nil {
		return nil, wrap("observe", path, err)
	}

	if c.log != nil {
		c.log.Debugf("GET %s (observe) to %s", path, c.target)
	}

	req, err := conn.NewObserveRequest(ctx, path)
	if err != nil {
		return nil, wrap("observe", path, err)
	}
	defer conn.ReleaseMessage(req)
	// The firmware only answers observe registrations sent non-confirmable.
	req.SetType(message.NonConfirmable)

	obs, err := conn.DoObserve(req, func(m *pool.Message) {
		if err := checkCode(m.Code()); err != nil {
			if c.log != nil {
				c.log.Warnf("observe %s: %v", path, err)
			}
			return
		}
		data, err := m.ReadBody()
		if err != nil {
			if c.log != nil {
				c.log.Warnf("observe %s: read body: %v", path, err)
			}
			return
		}
		handler(data)
	})
	if err != nil {
		return nil, wrap("observe", path, fmt.Errorf("%w: %v", ErrObserveFailed, err))
	}
	return &coapObservation{obs: obs}, nil
}

// Close implements Transport.
func (c *CoAP) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.closed = true

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}

func checkCode(code codes.Code) error {
	switch {
	case code == codes.NotFound:
		return ErrNotFound
	case code >= codes.BadRequest:
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, code)
	default:
		return nil
	}
}

// canceler is the part of a go-coap observation the transport needs.
type canceler interface {
	Cancel(ctx context.Context, opts ...message.Option) error
}

type coapObservation struct {
	obs canceler
}

func (o *coapObservation) Cancel(ctx context.Context) error {
	return o.obs.Cancel(ctx)
}

var _ Transport = (*CoAP)(nil)
