package purifier

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pion/logging"

	"github.com/backkem/airpurifier/pkg/attribute"
	"github.com/backkem/airpurifier/pkg/command"
	"github.com/backkem/airpurifier/pkg/crypto"
	"github.com/backkem/airpurifier/pkg/message"
	"github.com/backkem/airpurifier/pkg/session"
	"github.com/backkem/airpurifier/pkg/transport"
)

const (
	// inboxSize bounds the number of undelivered loop messages.
	inboxSize = 32

	// cancelTimeout bounds tearing down a subscription.
	cancelTimeout = 2 * time.Second
)

// Client is the connection state machine for one device.
type Client struct {
	config   Config
	log      logging.LeveledLogger
	session  *session.Session
	codec    *message.Codec
	encoder  *command.Encoder
	table    *attribute.Table
	watchdog *session.Watchdog

	inbox chan event
	stop  chan struct{}
	done  chan struct{}

	mu      sync.Mutex
	started bool
	closed  bool

	closing atomic.Bool

	// Owned by the event loop.
	attempt       uint64
	attemptCtx    context.Context
	cancelAttempt context.CancelFunc
	observation   transport.Observation
	pending       []*controlRequest
}

// NewClient creates a client. Call Start to connect.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, invalidConfig(err)
	}
	config.applyDefaults()

	var address string
	if t, ok := config.Transport.(interface{ Target() string }); ok {
		address = t.Target()
	}

	c := &Client{
		config:  config,
		session: session.New(address, config.SessionParams()),
		encoder: command.NewEncoder(config.Attributes),
		table:   config.Attributes,
		inbox:   make(chan event, inboxSize),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if config.LoggerFactory != nil {
		c.log = config.LoggerFactory.NewLogger("purifier")
	}
	c.codec = message.NewCodec(config.Secret, c.session.Counter())
	c.watchdog = session.NewWatchdog(func(kind session.WatchdogKind, gen uint64) {
		c.send(context.Background(), watchdogFired{kind: kind, gen: gen})
	})
	return c, nil
}

// Start launches the event loop and the first handshake.
func (c *Client) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true

	go c.run()
	return nil
}

// Reconnect restarts the handshake. A request made while a handshake is
// already in flight is absorbed by it.
func (c *Client) Reconnect() error {
	if err := c.checkRunning(); err != nil {
		return err
	}
	if !c.send(context.Background(), reconnectRequest{}) {
		return ErrClosed
	}
	return nil
}

// Destroy stops both watchdogs and releases the subscription, and returns
// once the event loop has torn down. No callback starts after Destroy is
// called; one still running is not waited for. Destroy is safe to call in
// any state, more than once, and from within a callback.
func (c *Client) Destroy() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	started := c.started
	c.mu.Unlock()

	c.closing.Store(true)
	c.session.SetState(session.StateDestroyed)
	close(c.stop)

	if !started {
		c.teardown()
		close(c.done)
		return
	}
	<-c.done
}

// Connected reports whether a live status stream exists.
func (c *Client) Connected() bool {
	return c.session.Connected()
}

// State returns the lifecycle state.
func (c *Client) State() session.State {
	return c.session.State()
}

// Done returns a channel closed once the client is fully torn down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) checkRunning() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if !c.started {
		return ErrNotStarted
	}
	return nil
}

// send delivers ev to the event loop. It fails once the client is destroyed
// or ctx ends.
func (c *Client) send(ctx context.Context, ev event) bool {
	select {
	case <-c.stop:
		return false
	default:
	}
	select {
	case c.inbox <- ev:
		return true
	case <-c.stop:
		return false
	case <-ctx.Done():
		return false
	}
}

// offerNotification hands a notification to the event loop without
// blocking the transport. It is dropped when the inbox is full.
func (c *Client) offerNotification(n notification) bool {
	select {
	case c.inbox <- n:
		return true
	default:
		if c.log != nil {
			c.log.Warnf("event loop busy, dropping notification (%d bytes)", len(n.payload))
		}
		return false
	}
}

func (c *Client) run() {
	defer close(c.done)
	defer c.teardown()

	c.reconnect("start")

	for {
		select {
		case <-c.stop:
			return
		case ev := <-c.inbox:
			c.handle(ev)
		}
	}
}

func (c *Client) handle(ev event) {
	switch ev := ev.(type) {
	case reconnectRequest:
		if c.session.State() == session.StateSyncing {
			c.debugf("reconnect requested during handshake, ignoring")
			return
		}
		c.reconnect("requested")

	case watchdogFired:
		if !c.watchdog.IsCurrent(ev.gen) {
			return
		}
		switch ev.kind {
		case session.WatchdogKeepalive:
			c.reconnect("no status within alive timeout")
		default:
			c.reconnect("no connection within reconnect interval")
		}

	case handshakeResult:
		if ev.attempt != c.attempt {
			return
		}
		c.handleHandshake(ev)

	case subscribeResult:
		if ev.attempt != c.attempt {
			if ev.obs != nil {
				cancelObservation(ev.obs)
			}
			return
		}
		c.handleSubscribe(ev)

	case notification:
		if ev.attempt != c.attempt {
			return
		}
		c.handleNotification(ev.payload)

	case *controlRequest:
		c.handleControl(ev)

	case errorEvent:
		c.emitError(ev.err)
	}
}

// reconnect abandons the current attempt and starts a new handshake.
func (c *Client) reconnect(reason string) {
	c.debugf("reconnecting: %s", reason)

	c.attempt++
	if c.cancelAttempt != nil {
		c.cancelAttempt()
	}
	c.releaseObservation()
	c.session.Invalidate()

	if c.session.MarkDisconnected() {
		c.emitConnected(false)
	}

	c.session.SetState(session.StateSyncing)
	c.watchdog.Arm(session.WatchdogReconnect, c.session.Params().ReconnectInterval)

	ctx, cancel := context.WithCancel(context.Background())
	c.attemptCtx, c.cancelAttempt = ctx, cancel
	attempt := c.attempt

	nonce, err := crypto.NewHandshakeNonce(nil)
	if err != nil {
		c.emitError(fmt.Errorf("generate handshake nonce: %w", err))
		return
	}
	c.debugf("sync with nonce %s", nonce)

	tr := c.config.Transport
	go func() {
		body, err := tr.Post(ctx, transport.PathSync, []byte(nonce))
		c.send(ctx, handshakeResult{attempt: attempt, body: body, err: err})
	}()
}

func (c *Client) handleHandshake(ev handshakeResult) {
	if ev.err != nil {
		// The reconnect watchdog retries.
		c.emitError(ev.err)
		return
	}

	counter := strings.TrimSpace(string(ev.body))
	if err := c.session.Begin(counter); err != nil {
		c.emitError(fmt.Errorf("%w: %q", ErrInvalidHandshake, counter))
		return
	}
	c.debugf("sync complete, counter %s", counter)

	c.session.SetState(session.StateSubscribing)
	c.subscribe()
	c.flushPending()
}

func (c *Client) subscribe() {
	attempt := c.attempt
	ctx, tr := c.attemptCtx, c.config.Transport

	go func() {
		obs, err := tr.Observe(ctx, transport.PathStatus, func(payload []byte) {
			c.offerNotification(notification{attempt: attempt, payload: payload})
		})
		if !c.send(ctx, subscribeResult{attempt: attempt, obs: obs, err: err}) && obs != nil {
			cancelObservation(obs)
		}
	}()
}

func (c *Client) handleSubscribe(ev subscribeResult) {
	if ev.err != nil {
		c.emitError(ev.err)
		return
	}
	c.observation = ev.obs
	if c.session.State() == session.StateSubscribing {
		c.session.SetState(session.StateObserving)
	}
	c.debugf("observing %s", transport.PathStatus)
}

func (c *Client) handleNotification(payload []byte) {
	if len(payload) == 0 {
		c.debugf("subscription acknowledged")
		return
	}
	if c.session.State() == session.StateSubscribing {
		c.session.SetState(session.StateObserving)
	}

	plaintext, err := c.codec.Decrypt(payload)
	if err != nil {
		c.emitError(err)
		return
	}
	reported, ok, err := parseStatus(plaintext)
	if err != nil {
		c.emitError(err)
		return
	}

	if c.session.MarkConnected() {
		c.emitConnected(true)
	}
	c.watchdog.Arm(session.WatchdogKeepalive, c.session.Params().AliveTimeout)

	if !ok {
		c.debugf("status without reported state")
		return
	}
	c.emitStatus(Status{
		Reported: reported,
		Values:   c.table.Decode(reported),
	})
}

func (c *Client) releaseObservation() {
	if c.observation == nil {
		return
	}
	cancelObservation(c.observation)
	c.observation = nil
}

func cancelObservation(obs transport.Observation) {
	ctx, cancel := context.WithTimeout(context.Background(), cancelTimeout)
	defer cancel()
	_ = obs.Cancel(ctx)
}

// teardown releases everything owned by the loop.
func (c *Client) teardown() {
	c.watchdog.Stop()
	if c.cancelAttempt != nil {
		c.cancelAttempt()
		c.cancelAttempt = nil
	}
	c.releaseObservation()
	c.session.Invalidate()
	c.session.MarkDisconnected()
	c.session.SetState(session.StateDestroyed)

	for _, req := range c.pending {
		req.reply <- controlResult{err: ErrClosed}
	}
	c.pending = nil
}

// emit runs a user callback. The loop waits for it unless the client is
// destroyed meanwhile, so a callback may block or call Destroy.
func (c *Client) emit(fn func()) {
	if c.closing.Load() {
		return
	}
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		fn()
	}()
	select {
	case <-finished:
	case <-c.stop:
	}
}

func (c *Client) emitConnected(connected bool) {
	if c.log != nil {
		c.log.Infof("connected: %v", connected)
	}
	if c.config.OnConnected != nil {
		c.emit(func() { c.config.OnConnected(connected) })
	}
}

func (c *Client) emitStatus(status Status) {
	if c.config.OnStatus != nil {
		c.emit(func() { c.config.OnStatus(status) })
	}
}

func (c *Client) emitError(err error) {
	if c.log != nil {
		c.log.Warnf("%v", err)
	}
	if c.config.OnError != nil {
		c.emit(func() { c.config.OnError(err) })
	}
}

func (c *Client) debugf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.log != nil {
		c.log.Debug(msg)
	}
	if c.config.OnDebug != nil {
		c.emit(func() { c.config.OnDebug(msg) })
	}
}
